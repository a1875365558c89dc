package photos

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/handleme/gallery/database"
	"github.com/handleme/gallery/database/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
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

func createPhoto(t *testing.T, db *gorm.DB, status string) *models.Photo {
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
	require.NoError(t, db.Create(record).Error)
	return record
}

func TestGetByIdentifier(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	record := createPhoto(t, db, models.PhotoStatusPending)

	found, err := repo.GetByIdentifier(context.Background(), record.Identifier)
	require.NoError(t, err)
	assert.Equal(t, record.ID, found.ID)

	_, err = repo.GetByIdentifier(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListByStatus_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	older := createPhoto(t, db, models.PhotoStatusPending)
	require.NoError(t, db.Model(older).UpdateColumn("created_at", base).Error)
	newer := createPhoto(t, db, models.PhotoStatusPending)
	require.NoError(t, db.Model(newer).UpdateColumn("created_at", base.Add(time.Hour)).Error)
	createPhoto(t, db, models.PhotoStatusApproved)

	list, err := repo.ListByStatus(context.Background(), models.PhotoStatusPending)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.Identifier, list[0].Identifier)
	assert.Equal(t, older.Identifier, list[1].Identifier)
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	record := createPhoto(t, db, models.PhotoStatusPending)

	require.NoError(t, repo.UpdateStatus(context.Background(), record.Identifier, models.PhotoStatusApproved))

	var stored models.Photo
	require.NoError(t, db.First(&stored, record.ID).Error)
	assert.Equal(t, models.PhotoStatusApproved, stored.Status)

	err := repo.UpdateStatus(context.Background(), "missing", models.PhotoStatusApproved)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIncrementLikeCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	record := createPhoto(t, db, models.PhotoStatusApproved)

	count, err := repo.IncrementLikeCount(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.IncrementLikeCount(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = repo.IncrementLikeCount(context.Background(), 999999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIncrementLikeCount_Concurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	record := createPhoto(t, db, models.PhotoStatusApproved)

	const workers = 20

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.IncrementLikeCount(context.Background(), record.ID); err != nil {
				t.Errorf("increment failed: %v", err)
			}
		}()
	}
	wg.Wait()

	var stored models.Photo
	require.NoError(t, db.First(&stored, record.ID).Error)
	assert.Equal(t, int64(workers), stored.LikeCount)
}
