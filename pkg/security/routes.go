package security

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/rate_limiter"
)

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 5 * time.Minute
)

type LoginHandler struct {
	rateLimiter *rate_limiter.RateLimiter
}

func NewLoginHandler() *LoginHandler {
	return &LoginHandler{
		rateLimiter: rate_limiter.NewRateLimiter(loginAttemptLimit, loginAttemptWindow),
	}
}

func (l *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/login", l.Login())
}

func (l *LoginHandler) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := resolveClientIP(c)

		if !l.rateLimiter.IsAllowed(clientIP) {
			remaining := l.rateLimiter.GetRemainingRequests(clientIP)
			c.Header("X-RateLimit-Limit", strconv.Itoa(loginAttemptLimit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
			c.Header("X-RateLimit-Reset", time.Now().Add(loginAttemptWindow).Format(time.RFC3339))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
			return
		}

		var req struct {
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		if err := AuthenticateAdmin(req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
			return
		}

		token, err := GenerateJWT("admin")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// resolveClientIP prefers proxy headers over the socket address so the rate
// limit keys on the real caller when the app sits behind a reverse proxy.
func resolveClientIP(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}

	if strings.Contains(clientIP, ",") {
		clientIP = strings.Split(clientIP, ",")[0]
	}

	return strings.TrimSpace(clientIP)
}
