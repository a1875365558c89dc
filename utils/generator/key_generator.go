package generator

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const submissionPrefix = "submissions"

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// KeyGenerator derives storage keys for submitted photos.
type KeyGenerator struct{}

func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{}
}

// SubmissionKey returns "submissions/<uuid>.<ext>" for an uploaded file
// name. The extension is lowercased and stripped to [a-z0-9]; an empty
// result falls back to jpg. The random UUID makes the key effectively
// collision-free, but callers still upload with no-overwrite semantics.
func (g *KeyGenerator) SubmissionKey(fileName string) string {
	return fmt.Sprintf("%s/%s.%s", submissionPrefix, uuid.NewString(), SafeExtension(fileName))
}

// SafeExtension sanitizes a file name's extension for use in a storage key.
func SafeExtension(fileName string) string {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	ext = nonAlphanumeric.ReplaceAllString(strings.ToLower(ext), "")
	if ext == "" {
		return "jpg"
	}
	return ext
}
