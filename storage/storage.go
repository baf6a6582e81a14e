package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cafe-order-api/config"

	"github.com/google/uuid"
)

// MaxUploadSize caps image uploads at 5 MB.
const MaxUploadSize = 5 * 1024 * 1024

var ErrNotImage = errors.New("file must be an image")
var ErrTooLarge = errors.New("file exceeds the 5 MB limit")

// Store persists uploaded assets on local disk and serves them under a public
// URL prefix.
type Store struct {
	dir       string
	publicURL string
}

func New(dir, publicURL string) *Store {
	return &Store{dir: dir, publicURL: strings.TrimSuffix(publicURL, "/")}
}

// Default returns a store built from the loaded configuration.
func Default() *Store {
	return New(config.App.Storage.UploadDir, config.App.Storage.PublicURL)
}

// Save writes the upload to disk under a fresh uuid filename and returns its
// public URL. Only image content types are accepted.
func (s *Store) Save(r io.Reader, originalName, contentType string, size int64) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	if size > MaxUploadSize {
		return "", ErrTooLarge
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".jpg"
	}
	fileName := uuid.NewString() + ext

	diskPath := filepath.Join(s.dir, fileName)
	dst, err := os.Create(diskPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	// The declared size can lie; count what actually arrives.
	n, err := io.Copy(dst, io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		os.Remove(diskPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if n > MaxUploadSize {
		os.Remove(diskPath)
		return "", ErrTooLarge
	}

	return s.publicURL + "/" + fileName, nil
}

// Remove deletes the asset behind a public URL. Best-effort: callers treat a
// failure as a logged orphan, never as a failure of the primary operation.
func (s *Store) Remove(publicURL string) error {
	if publicURL == "" {
		return nil
	}
	fileName := path.Base(publicURL)
	if fileName == "." || fileName == "/" {
		return fmt.Errorf("malformed asset url %q", publicURL)
	}
	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveLogged wraps Remove for the fire-and-forget cleanup paths, tagging
// failures so orphaned assets can be reconciled out-of-band.
func (s *Store) RemoveLogged(publicURL string) {
	if err := s.Remove(publicURL); err != nil {
		slog.Error("orphaned asset: cleanup failed", "url", publicURL, "error", err)
	}
}
