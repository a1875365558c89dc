package validator

import (
	"regexp"
	"strings"
)

// cityStatePattern loosely matches "City, ST": anything without a comma,
// a comma, optional whitespace, then at least two letters.
var cityStatePattern = regexp.MustCompile(`^[^,]+,\s*[A-Za-z]{2,}$`)

// IsCityState reports whether s matches the loose "City, State" format.
func IsCityState(s string) bool {
	return cityStatePattern.MatchString(strings.TrimSpace(s))
}

// IsImageContentType reports whether the MIME type names an image.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
