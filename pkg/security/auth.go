package security

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = errors.New("invalid credentials")

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// AuthenticateAdmin checks the supplied password against the bcrypt hash in
// ADMIN_PASSWORD_HASH. There is a single administrator account; everyone else
// reads the inventory anonymously.
func AuthenticateAdmin(password string) error {
	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		return errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errInvalidCredentials
	}

	return nil
}

func GenerateJWT(role string) (string, error) {
	claims := jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(12 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}
