package taglines

import (
	"testing"

	"github.com/jonathan/namesmith/internal/industry"
	"github.com/jonathan/namesmith/internal/randsrc"
	"github.com/jonathan/namesmith/internal/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	v, err := vocabulary.Default()
	require.NoError(t, err)
	p := NewProvider(v, randsrc.NewSeeded(9))

	tests := []struct {
		name     string
		industry industry.Industry
		list     string
	}{
		{"tech list", industry.Tech, "tech"},
		{"food list", industry.Food, "food"},
		{"eco list", industry.Eco, "eco"},
		{"general list", industry.General, "general"},
		{"unknown falls back to general", industry.Industry("space"), "general"},
	}

	names := []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Generate(names, tt.industry)
			require.Len(t, got, len(names))
			for _, tagline := range got {
				assert.Contains(t, v.Taglines[tt.list], tagline)
			}
		})
	}
}

func TestGenerate_EmptyNames(t *testing.T) {
	p := NewProvider(vocabulary.MustDefault(), nil)
	assert.Empty(t, p.Generate(nil, industry.Tech))
	assert.Empty(t, p.Generate([]string{}, industry.General))
}

func TestPick(t *testing.T) {
	v := vocabulary.MustDefault()
	p := NewProvider(v, randsrc.NewSeeded(1))
	assert.Contains(t, v.Taglines["health"], p.Pick(industry.Health))
	assert.Contains(t, v.Taglines["general"], p.Pick(industry.Industry("")))
}
