package tokens

import (
	"context"

	"github.com/handleme/gallery/database/models"
	"gorm.io/gorm"
)

// Repository persists one-time login tokens.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new login token.
func (r *Repository) Create(ctx context.Context, token *models.LoginToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByHash fetches a token by its stored hash.
func (r *Repository) GetByHash(ctx context.Context, hash string) (*models.LoginToken, error) {
	var token models.LoginToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Redeem marks a token as used. The conditional update makes redemption
// single-use even when two verify calls race on the same token.
func (r *Repository) Redeem(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.LoginToken{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
