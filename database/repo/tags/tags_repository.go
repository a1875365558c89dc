package tags

import (
	"context"

	"github.com/handleme/gallery/database/models"
	"gorm.io/gorm"
)

// Repository reads the reference tag list.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all tags ordered by name.
func (r *Repository) List(ctx context.Context) ([]*models.Tag, error) {
	var list []*models.Tag
	err := r.db.WithContext(ctx).Order("name").Find(&list).Error
	return list, err
}
