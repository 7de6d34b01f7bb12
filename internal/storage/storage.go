package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for uploads that are not jpeg, png, or
// webp images.
var ErrUnsupportedType = errors.New("unsupported image type")

// ImageStore saves and serves equipment photos on the local filesystem.
// Files are stored flat under the upload directory with a uuid prefix so
// re-uploads of the same filename never clobber each other.
type ImageStore struct {
	baseURL   string // server URL prefix for public image links
	uploadDir string
}

// NewImageStore creates the upload directory if needed.
func NewImageStore(baseURL, uploadDir string) (*ImageStore, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &ImageStore{baseURL: baseURL, uploadDir: uploadDir}, nil
}

// Save writes the uploaded image and returns the public URL path under
// which it is served.
func (s *ImageStore) Save(originalName string, r io.Reader) (string, error) {
	ext := sanitizeExt(originalName)
	if ext == "" {
		return "", ErrUnsupportedType
	}
	name := uuid.New().String() + ext
	path := filepath.Join(s.uploadDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

// Open returns a reader for a stored image by its bare filename.
func (s *ImageStore) Open(name string) (io.ReadCloser, error) {
	// Reject path traversal
	if name != filepath.Base(name) {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(s.uploadDir, name))
}

// Dir returns the upload directory, for static file serving.
func (s *ImageStore) Dir() string {
	return s.uploadDir
}

func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	default:
		return ""
	}
}
