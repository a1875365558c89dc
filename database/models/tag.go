package models

// Tag is reference data for the submission form. Rows are read-only at
// runtime; the tag service falls back to a built-in set when the table
// is empty or unreachable.
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex:idx_tag_name;not null"`
}
