package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gcrc/newsletter-agent/internal/logger"
	"github.com/google/uuid"
)

// Uploads manages the shared temporary directory for request files and
// downloaded images. Names carry a random id, so two requests arriving in
// the same second cannot collide.
type Uploads struct {
	dir     string
	maxSize int64
}

func NewUploads(dir string, maxSize int64) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Uploads{dir: dir, maxSize: maxSize}, nil
}

// Save writes an uploaded stream to a uniquely named file and returns its
// path. The stream is rejected once it exceeds the configured size limit.
func (u *Uploads) Save(prefix, ext string, r io.Reader) (string, error) {
	path := filepath.Join(u.dir, fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), ext))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, u.maxSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if n > u.maxSize {
		os.Remove(path)
		return "", fmt.Errorf("upload exceeds maximum size of %d bytes", u.maxSize)
	}

	return path, nil
}

// ImagePath returns a fresh destination path for a downloaded newsletter
// image.
func (u *Uploads) ImagePath() string {
	return filepath.Join(u.dir, fmt.Sprintf("newsletter_%s.png", uuid.NewString()))
}

// Remove deletes a temporary file, best effort.
func (u *Uploads) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Get().Debug().Err(err).Str("path", path).Msg("Failed to remove temporary file")
	}
}
