package photo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/handleme/gallery/database"
	"github.com/handleme/gallery/database/models"
	"github.com/handleme/gallery/database/repo/likes"
	"github.com/handleme/gallery/database/repo/photos"
	"github.com/handleme/gallery/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway file-backed sqlite database with the same
// WAL and busy-timeout settings the serve command uses, so concurrency
// tests exercise the real locking behavior.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestPhoto(t *testing.T, db *gorm.DB, status string) *models.Photo {
	t.Helper()

	record := &models.Photo{
		Identifier:  uuid.NewString(),
		Title:       "Test hands",
		Location:    "Austin, TX",
		ImagePath:   fmt.Sprintf("submissions/%s.jpg", uuid.NewString()),
		Status:      status,
		ContentType: "image/jpeg",
		FileSize:    1024,
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func newLikeService(t *testing.T, db *gorm.DB) *LikeService {
	t.Helper()
	return NewLikeService(photos.NewRepository(db), likes.NewRepository(db))
}

// memStore is an in-memory storage.Provider for submission tests.
type memStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (m *memStore) SaveNew(ctx context.Context, key string, file io.Reader, size int64, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[key]; ok {
		return storage.ErrKeyExists
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	m.blobs[key] = data
	return nil
}

func (m *memStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok, nil
}

func (m *memStore) Health(ctx context.Context) error { return nil }

func (m *memStore) Name() string { return "memory" }

func (m *memStore) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.blobs {
		keys = append(keys, k)
	}
	return keys
}

// pngBytes returns a minimal valid PNG header payload that
// http.DetectContentType identifies as image/png.
func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
}
