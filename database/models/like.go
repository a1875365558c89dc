package models

import "time"

// Like records one visitor's like on one photo. The composite unique
// index is the de-duplication guarantee: a second insert for the same
// (photo, fingerprint) pair fails at the database, it is never counted
// twice by application code.
type Like struct {
	ID          uint   `gorm:"primaryKey"`
	PhotoID     uint   `gorm:"not null;uniqueIndex:idx_photo_fingerprint"`
	Fingerprint string `gorm:"not null;uniqueIndex:idx_photo_fingerprint;size:128"`
	CreatedAt   time.Time

	Photo Photo `gorm:"foreignKey:PhotoID"`
}
