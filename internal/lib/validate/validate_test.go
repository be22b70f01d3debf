package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugTag(t *testing.T) {
	type page struct {
		Slug string `validate:"required,slug"`
	}

	v := New()

	tests := []struct {
		slug  string
		valid bool
	}{
		{"about", true},
		{"about-the-artist", true},
		{"cv-2024", true},
		{"", false},
		{"About", false},
		{"about--artist", false},
		{"-about", false},
		{"about us", false},
		{"عن", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			err := v.Struct(page{Slug: tt.slug})
			assert.Equal(t, tt.valid, err == nil)
			assert.Equal(t, tt.valid, IsSlug(tt.slug))
		})
	}
}
