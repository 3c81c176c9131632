package industry

import (
	"testing"

	"github.com/jonathan/namesmith/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassifier(t *testing.T) *Classifier {
	t.Helper()
	v, err := vocabulary.Default()
	require.NoError(t, err)
	return NewClassifier(v)
}

func TestDetect(t *testing.T) {
	c := newClassifier(t)

	tests := []struct {
		name     string
		keywords []string
		expected Industry
	}{
		{"empty", nil, General},
		{"no match", []string{"river", "stone"}, General},
		{"hidden substring", []string{"mountain"}, Tech},
		{"single tech", []string{"software", "cloud"}, Tech},
		{"substring match", []string{"smartphone"}, Tech},
		{"food majority", []string{"kitchen", "chef", "app"}, Food},
		{"case insensitive", []string{"GOURMET"}, Food},
		{"tie goes to first scored", []string{"eco", "friendly", "skincare", "product"}, Eco},
		{"tie by keyword order", []string{"paw", "glow"}, Pet},
		{"shared term scores both", []string{"care"}, Health},
		{"one point per keyword", []string{"cyberdata", "chef", "gourmet"}, Food},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Detect(tt.keywords))
		})
	}
}

func TestDetect_ExpandedEcoScenario(t *testing.T) {
	c := newClassifier(t)
	keywords := []string{
		"eco", "friendly", "skincare", "product",
		"amicable", "cordial", "genial", "merchandise", "goods", "ware",
	}
	assert.Equal(t, Eco, c.Detect(keywords))
}

func TestDetect_Deterministic(t *testing.T) {
	c := newClassifier(t)
	keywords := []string{"pure", "natural", "wellness", "vital"}
	first := c.Detect(keywords)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, c.Detect(keywords))
	}
}

func TestTerms(t *testing.T) {
	c := newClassifier(t)

	assert.Contains(t, c.Terms(Tech), "digital")
	assert.Empty(t, c.Terms(General))
	assert.Empty(t, c.Terms(Industry("space")))

	assert.True(t, c.Known(Beauty))
	assert.True(t, c.Known(General))
	assert.False(t, c.Known(Industry("space")))
}
