package domains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/namesmith/internal/randsrc"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Green Leaf", "greenleaf"},
		{"Bloom & Co", "bloomco"},
		{"Data-Hub", "data-hub"},
		{"-Edge-", "edge"},
		{"Café Lumière", "caflumire"},
		{"Studio 54", "studio54"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.in))
		})
	}
}

func TestSuggest(t *testing.T) {
	assert.Equal(t,
		[]string{"greenleaf.com", "greenleaf.net", "greenleaf.org", "greenleaf.io"},
		Suggest("Green Leaf"))
	assert.Nil(t, Suggest("   "))
}

func TestCheck(t *testing.T) {
	c := NewChecker(randsrc.NewSeeded(3))
	resp := c.Check("Meta Sphere")

	assert.Equal(t, "Meta Sphere", resp.BusinessName)
	require.Len(t, resp.DomainSuggestions, 4)
	assert.Len(t, resp.Availability, 4)
	for _, d := range resp.DomainSuggestions {
		_, ok := resp.Availability[d]
		assert.True(t, ok, "availability missing for %s", d)
	}
	assert.Equal(t, Note, resp.Note)
}

func TestCheck_SeededIsReproducible(t *testing.T) {
	a := NewChecker(randsrc.NewSeeded(11)).Check("Pixel Forge")
	b := NewChecker(randsrc.NewSeeded(11)).Check("Pixel Forge")
	assert.Equal(t, a.Availability, b.Availability)
}

func TestCheck_NoUsableCharacters(t *testing.T) {
	resp := NewChecker(nil).Check("&&&")
	assert.Empty(t, resp.DomainSuggestions)
	assert.NotNil(t, resp.DomainSuggestions)
	assert.Empty(t, resp.Availability)
}
