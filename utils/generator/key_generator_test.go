package generator

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeExtension(t *testing.T) {
	cases := []struct {
		name     string
		fileName string
		want     string
	}{
		{"simple jpg", "photo.jpg", "jpg"},
		{"uppercase", "photo.JPEG", "jpeg"},
		{"no extension", "photo", "jpg"},
		{"dot only", "photo.", "jpg"},
		{"strips specials", "photo.j p-g!", "jpg"},
		{"multiple dots", "my.photo.png", "png"},
		{"hidden file", ".env", "env"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SafeExtension(tc.fileName))
		})
	}
}

func TestSubmissionKey(t *testing.T) {
	g := NewKeyGenerator()

	key := g.SubmissionKey("hands.png")
	assert.True(t, strings.HasPrefix(key, "submissions/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	uuidPattern := regexp.MustCompile(`^submissions/[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.png$`)
	assert.Regexp(t, uuidPattern, key)
}

func TestSubmissionKey_Unique(t *testing.T) {
	g := NewKeyGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := g.SubmissionKey("photo.jpg")
		assert.False(t, seen[key], "derived keys must not repeat")
		seen[key] = true
	}
}
