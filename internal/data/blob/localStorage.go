// Package blob stores uploaded files on local disk under generated names.
package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"chatknowledge/internal/rag/ragerr"
	"chatknowledge/pkg/logger_i"
)

type LocalStorage struct {
	dir      string
	maxBytes int64
	allowed  []string
	logger   *logger_i.Logger
}

func NewLocalStorage(dir string, maxBytes int64, allowedMediaTypes []string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &LocalStorage{
		dir:      dir,
		maxBytes: maxBytes,
		allowed:  allowedMediaTypes,
		logger:   logger_i.NewLogger("BlobStorage"),
	}, nil
}

func (s *LocalStorage) Accepts(mediaType string) bool {
	return slices.Contains(s.allowed, mediaType)
}

// Save streams src to disk under a generated name. The cap is enforced
// during the copy; an oversized upload leaves no partial file behind.
func (s *LocalStorage) Save(name string, src io.Reader) (string, error) {
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		s.remove(path)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if written > s.maxBytes {
		s.remove(path)
		return "", fmt.Errorf("%w: cap is %d bytes", ragerr.ErrSizeLimitExceeded, s.maxBytes)
	}
	return path, nil
}

func (s *LocalStorage) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStorage) remove(path string) {
	if err := os.Remove(path); err != nil {
		s.logger.Error("Error removing partial file", "path", path, "error", err)
	}
}
