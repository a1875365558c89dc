package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCityState(t *testing.T) {
	valid := []string{
		"Austin, TX",
		"Austin,TX",
		"Austin,  Texas",
		"St. Paul, MN",
		"  Portland, OR  ",
	}
	for _, s := range valid {
		assert.True(t, IsCityState(s), "expected %q to be accepted", s)
	}

	invalid := []string{
		"Austin",
		"Austin,",
		"Austin, T",
		"Austin, 78",
		", TX",
		"",
	}
	for _, s := range invalid {
		assert.False(t, IsCityState(s), "expected %q to be rejected", s)
	}
}

func TestIsImageContentType(t *testing.T) {
	assert.True(t, IsImageContentType("image/jpeg"))
	assert.True(t, IsImageContentType("image/png"))
	assert.False(t, IsImageContentType("application/pdf"))
	assert.False(t, IsImageContentType("text/html"))
	assert.False(t, IsImageContentType(""))
}
