package categorize

import (
	"testing"

	"github.com/jonathan/namesmith/internal/vocabulary"
	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	c := New(vocabulary.MustDefault())

	tests := []struct {
		name     string
		input    []string
		expected Categories
	}{
		{
			name:     "empty",
			input:    nil,
			expected: Categories{},
		},
		{
			name:  "each bucket",
			input: []string{"CloudNest", "BrightGroup", "RoyalBloom", "Sunny Paws"},
			expected: Categories{
				"Tech & Innovation": {"CloudNest"},
				"Professional":      {"BrightGroup"},
				"Elegant":           {"RoyalBloom"},
				"Creative":          {"Sunny Paws"},
			},
		},
		{
			name:  "priority order wins",
			input: []string{"TechStudio", "GlobalLuxe"},
			expected: Categories{
				"Tech & Innovation": {"TechStudio"},
				"Professional":      {"GlobalLuxe"},
			},
		},
		{
			name:  "case insensitive and input order kept",
			input: []string{"SMARTPAW", "Happy Tails", "The Bean Lab"},
			expected: Categories{
				"Tech & Innovation": {"SMARTPAW", "The Bean Lab"},
				"Creative":          {"Happy Tails"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Categorize(tt.input))
		})
	}
}

func TestCategorize_EveryNameOnce(t *testing.T) {
	c := New(vocabulary.MustDefault())
	names := []string{"NeoCorp", "Pure Studio", "Coffeeify", "CyberBrew", "The Roast Co"}

	total := 0
	for _, bucket := range c.Categorize(names) {
		assert.NotEmpty(t, bucket)
		total += len(bucket)
	}
	assert.Equal(t, len(names), total)
}

func TestOrder(t *testing.T) {
	c := New(vocabulary.MustDefault())
	assert.Equal(t, []string{"Tech & Innovation", "Professional", "Elegant", "Creative"}, c.Order())

	buckets := c.Ordered(Categories{"Creative": {"A"}, "Professional": {"B"}, "Elegant": nil})
	assert.Equal(t, []Bucket{
		{Label: "Professional", Names: []string{"B"}},
		{Label: "Creative", Names: []string{"A"}},
	}, buckets)
}
