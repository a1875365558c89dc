package photos

import (
	"context"
	"fmt"

	"github.com/handleme/gallery/database/models"
	"gorm.io/gorm"
)

// Repository persists photo records.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new photo record.
func (r *Repository) Create(ctx context.Context, photo *models.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

// GetByIdentifier looks a photo up by its public identifier.
func (r *Repository) GetByIdentifier(ctx context.Context, identifier string) (*models.Photo, error) {
	var photo models.Photo
	err := r.db.WithContext(ctx).Where("identifier = ?", identifier).First(&photo).Error
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListByStatus returns all photos with the given status, newest first.
// The moderation queue is unpaginated on purpose: the full pending set
// is always returned.
func (r *Repository) ListByStatus(ctx context.Context, status string) ([]*models.Photo, error) {
	var list []*models.Photo
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

// UpdateStatus transitions a photo to the given status. The update is
// idempotent: re-approving an approved photo succeeds and changes
// nothing else, and like_count is never touched here.
func (r *Repository) UpdateStatus(ctx context.Context, identifier, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Photo{}).
		Where("identifier = ?", identifier).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementLikeCount adds one to the photo's like counter as a single
// SQL update (like_count = like_count + 1) and returns the new value.
// Two racing callers each land their own increment; neither overwrites
// the other, which a read-modify-write in Go would not guarantee.
func (r *Repository) IncrementLikeCount(ctx context.Context, photoID uint) (int64, error) {
	var newCount int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Photo{}).
			Where("id = ?", photoID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var photo models.Photo
		if err := tx.Select("like_count").Where("id = ?", photoID).First(&photo).Error; err != nil {
			return fmt.Errorf("failed to read like count after increment: %w", err)
		}
		newCount = photo.LikeCount
		return nil
	})

	return newCount, err
}
