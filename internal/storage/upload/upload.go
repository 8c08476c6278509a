package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invenhq/inventory-api/internal/apperr"
)

// allowedExtensions are the image file extensions accepted for product images.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// Store saves uploaded product images on disk under a generated unique name
// and serves them back through the /uploads route.
type Store struct {
	dir     string
	maxSize int64
}

func NewStore(dir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the directory files are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// MaxSize returns the per-file size limit in bytes.
func (s *Store) MaxSize() int64 {
	return s.maxSize
}

// Save validates and persists an uploaded image, returning the public URL
// path ("/uploads/<name>") it will be served under.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", apperr.InvalidImageErr
	}
	if header.Size > s.maxSize {
		return "", apperr.InvalidImageErr
	}

	name := fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	// MaxSize+1 so an oversized stream (header.Size can lie) is detectable.
	n, err := io.Copy(dst, io.LimitReader(file, s.maxSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if n > s.maxSize {
		os.Remove(path)
		return "", apperr.InvalidImageErr
	}

	return "/uploads/" + name, nil
}
