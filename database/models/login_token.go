package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginToken is a one-time passwordless sign-in token. Only the SHA-256
// of the token value is stored.
type LoginToken struct {
	gorm.Model
	TokenHash string    `gorm:"uniqueIndex:idx_login_token_hash;not null"`
	Email     string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false;not null"`
}

// Valid reports whether the token can still be redeemed.
func (t *LoginToken) Valid(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
