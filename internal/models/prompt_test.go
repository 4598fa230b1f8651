package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCategory(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, IsValidCategory(c), c)
	}
	assert.False(t, IsValidCategory(""))
	assert.False(t, IsValidCategory("Writing"))
	assert.False(t, IsValidCategory("poetry"))
	assert.Len(t, Categories(), 8)
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: []string{}},
		{name: "trims and drops empty", in: []string{" blog ", "", "  "}, want: []string{"blog"}},
		{name: "dedup keeps first spelling", in: []string{"Blog", "blog", "BLOG", "seo"}, want: []string{"Blog", "seo"}},
		{name: "keeps order", in: []string{"c", "a", "b"}, want: []string{"c", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}
