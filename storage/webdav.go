package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/studio-b12/gowebdav"
)

// webdavStorage stores blobs on a WebDAV share.
type webdavStorage struct {
	client *gowebdav.Client
}

func newWebDAVStorage(url, username, password string) (*webdavStorage, error) {
	if url == "" {
		return nil, fmt.Errorf("webdav URL is required")
	}

	client := gowebdav.NewClient(url, username, password)
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("webdav connection test failed: %w", err)
	}

	return &webdavStorage{client: client}, nil
}

func (s *webdavStorage) SaveNew(ctx context.Context, key string, file io.Reader, size int64, contentType string) error {
	exists, err := s.Exists(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return ErrKeyExists
	}

	if dir := path.Dir(key); dir != "." && dir != "/" {
		if err := s.client.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create webdav directory '%s': %w", dir, err)
		}
	}

	if err := s.client.WriteStream(key, file, 0644); err != nil {
		return fmt.Errorf("failed to upload '%s' to webdav: %w", key, err)
	}

	return nil
}

func (s *webdavStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	stream, err := s.client.ReadStream(key)
	if err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "404") {
			return nil, fmt.Errorf("file not found on webdav: %s", key)
		}
		return nil, fmt.Errorf("failed to read '%s' from webdav: %w", key, err)
	}
	return stream, nil
}

func (s *webdavStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.Stat(key)
	if err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat '%s' on webdav: %w", key, err)
	}
	return true, nil
}

func (s *webdavStorage) Health(ctx context.Context) error {
	_, err := s.client.ReadDir("/")
	return err
}

func (s *webdavStorage) Name() string {
	return "webdav"
}
