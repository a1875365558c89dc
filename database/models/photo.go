package models

import (
	"strings"

	"gorm.io/gorm"
)

// Photo status values. A photo enters the queue as pending and is moved
// to approved or rejected by a moderator; both are terminal.
const (
	PhotoStatusPending  = "pending"
	PhotoStatusApproved = "approved"
	PhotoStatusRejected = "rejected"
)

type Photo struct {
	gorm.Model
	Identifier string `gorm:"uniqueIndex:idx_photo_identifier;not null"`
	Title      string `gorm:"not null"`
	Location   string `gorm:"not null"`
	ImagePath  string `gorm:"uniqueIndex:idx_photo_image_path;not null"`
	Status     string `gorm:"default:pending;not null;index:idx_photo_status"`

	// Denormalized count of Like rows; updated only via atomic SQL
	// increments, never via read-modify-write in Go.
	LikeCount int64 `gorm:"default:0;not null"`

	// Tags are fixed at submission time.
	Tags string

	ContentType string `gorm:"not null"`
	FileSize    int64  `gorm:"not null"`
}

// SetTags stores the tag snapshot as a comma-joined string.
func (p *Photo) SetTags(tags []string) {
	p.Tags = strings.Join(tags, ",")
}

// TagList returns the tag snapshot taken at submission time.
func (p *Photo) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	return strings.Split(p.Tags, ",")
}
