package photos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/handleme/gallery/database"
	"github.com/handleme/gallery/database/models"
	"github.com/handleme/gallery/database/repo/likes"
	"github.com/handleme/gallery/database/repo/photos"
	photoSvc "github.com/handleme/gallery/internal/services/photo"
	"github.com/handleme/gallery/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// memStore is an in-memory storage.Provider for handler tests.
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
		return nil, fmt.Errorf("file not found: %s", key)
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
func (m *memStore) Name() string                     { return "memory" }

type testEnv struct {
	db     *gorm.DB
	store  *memStore
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	store := newMemStore()

	photoRepo := photos.NewRepository(db)
	likeRepo := likes.NewRepository(db)

	submitService := photoSvc.NewSubmitService(photoRepo, store, 8<<20)
	likeService := photoSvc.NewLikeService(photoRepo, likeRepo)
	galleryService := photoSvc.NewGalleryService(photoRepo, nil, time.Minute, "http://localhost:3000")

	handler := NewHandler(submitService, likeService, galleryService, store, 8<<20)

	router := gin.New()
	router.POST("/api/v1/photos", handler.SubmitPhoto)
	router.GET("/api/v1/photos", handler.ListApproved)
	router.POST("/api/v1/photos/like", handler.LikePhoto)
	router.GET("/photos/file/*path", handler.GetFile)

	return &testEnv{db: db, store: store, router: router}
}

func (e *testEnv) createPhoto(t *testing.T, status string) *models.Photo {
	t.Helper()
	record := &models.Photo{
		Identifier:  uuid.NewString(),
		Title:       "Test",
		Location:    "Austin, TX",
		ImagePath:   fmt.Sprintf("submissions/%s.jpg", uuid.NewString()),
		Status:      status,
		ContentType: "image/jpeg",
		FileSize:    1,
	}
	require.NoError(t, e.db.Create(record).Error)
	return record
}

func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// multipartSubmission builds a valid submission form body.
func multipartSubmission(t *testing.T, fields map[string]string, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

// pngBytes is a payload http.DetectContentType reads as image/png.
func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
}
