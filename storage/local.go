package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localStorage stores blobs on the local filesystem under a base path.
type localStorage struct {
	absBasePath string
}

func newLocalStorage(basePath string) (*localStorage, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory '%s': %w", absPath, err)
	}

	return &localStorage{
		absBasePath: absPath + string(os.PathSeparator),
	}, nil
}

// resolve maps a key to an absolute path and rejects traversal outside
// the base directory.
func (s *localStorage) resolve(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}

	fullPath := filepath.Join(s.absBasePath, filepath.FromSlash(key))
	if !strings.HasPrefix(fullPath, s.absBasePath) {
		return "", fmt.Errorf("invalid storage key, potential directory traversal: %s", key)
	}
	return fullPath, nil
}

func (s *localStorage) SaveNew(ctx context.Context, key string, file io.Reader, size int64, contentType string) error {
	dstPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", key, err)
	}

	// O_EXCL gives the no-overwrite guarantee atomically.
	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return ErrKeyExists
		}
		return fmt.Errorf("failed to create destination file '%s': %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to copy file content to '%s': %w", dstPath, err)
	}

	return nil
}

func (s *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", key)
		}
		return nil, fmt.Errorf("failed to open file '%s': %w", key, err)
	}

	return file, nil
}

func (s *localStorage) Exists(ctx context.Context, key string) (bool, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *localStorage) Health(ctx context.Context) error {
	_, err := os.Stat(s.absBasePath)
	return err
}

func (s *localStorage) Name() string {
	return "local"
}
