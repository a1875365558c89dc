package likes

import (
	"context"

	"github.com/handleme/gallery/database/models"
	"gorm.io/gorm"
)

// Repository persists like records.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a like row. A duplicate (photo, fingerprint) pair is
// rejected by the composite unique index and surfaces as
// gorm.ErrDuplicatedKey; callers treat that as "already liked".
func (r *Repository) Create(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// CountByPhoto returns the number of like rows for a photo.
func (r *Repository) CountByPhoto(ctx context.Context, photoID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("photo_id = ?", photoID).
		Count(&count).Error
	return count, err
}
