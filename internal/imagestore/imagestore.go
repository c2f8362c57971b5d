package imagestore

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	custom_error "github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/errors"
)

// MaxFileSize is the upload limit per image.
const MaxFileSize = 5 << 20 // 5MB

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// Store accepts uploaded image binaries and hands back stable references that
// asset records carry. Whether the bytes land on disk or in object storage is
// hidden behind this interface.
type Store interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(ref string) error
}

// DiskStore keeps uploads in a local directory, served under /uploads.
type DiskStore struct {
	dir    string
	logger *zap.Logger
}

func NewDiskStore(dir string, logger *zap.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, logger: logger}, nil
}

// Save validates the upload (JPEG/PNG/GIF, max 5MB) and writes it under a
// fresh file name. The returned reference is the public /uploads path.
func (s *DiskStore) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxFileSize {
		return "", custom_error.NewValidationError("images", fmt.Sprintf("%s exceeds the 5MB size limit", file.Filename))
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("unable to open uploaded file: %w", err)
	}
	defer src.Close()

	// Sniff the actual content rather than trusting the client header.
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("unable to read uploaded file: %w", err)
	}
	ext, ok := allowedContentTypes[http.DetectContentType(head[:n])]
	if !ok {
		return "", custom_error.NewValidationError("images", fmt.Sprintf("%s is not a JPEG, PNG or GIF image", file.Filename))
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("unable to rewind uploaded file: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("unable to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("unable to write image file: %w", err)
	}

	return "/uploads/" + name, nil
}

// Remove deletes the stored file behind a reference. Removing a reference
// that no longer exists is not an error, so retried deletes stay idempotent.
func (s *DiskStore) Remove(ref string) error {
	if !strings.HasPrefix(ref, "/uploads/") {
		return fmt.Errorf("unknown image reference: %s", ref)
	}

	target := filepath.Join(s.dir, path.Base(ref))
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("unable to remove image file: %w", err)
	}

	s.logger.Debug("removed stored image", zap.String("ref", ref))
	return nil
}
