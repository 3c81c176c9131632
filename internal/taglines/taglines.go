// Package taglines pairs candidate names with short slogans from the
// vocabulary's per-industry tagline lists.
package taglines

import (
	"github.com/jonathan/namesmith/internal/industry"
	"github.com/jonathan/namesmith/internal/randsrc"
	"github.com/jonathan/namesmith/internal/vocabulary"
)

// Provider picks taglines at random.
type Provider struct {
	lists map[string][]string
	rnd   randsrc.Source
}

// NewProvider returns a Provider. A nil src uses randsrc.Default().
func NewProvider(v *vocabulary.Vocabulary, src randsrc.Source) *Provider {
	if src == nil {
		src = randsrc.Default()
	}
	return &Provider{lists: v.Taglines, rnd: src}
}

// Generate returns one tagline per name, each drawn independently from the
// industry's list. Industries without a list use the general one.
func (p *Provider) Generate(names []string, ind industry.Industry) []string {
	list := p.list(ind)
	out := make([]string, len(names))
	for i := range names {
		out[i] = randsrc.Choice(p.rnd, list)
	}
	return out
}

// Pick returns a single tagline for ind.
func (p *Provider) Pick(ind industry.Industry) string {
	return randsrc.Choice(p.rnd, p.list(ind))
}

func (p *Provider) list(ind industry.Industry) []string {
	if list := p.lists[string(ind)]; len(list) > 0 {
		return list
	}
	return p.lists[vocabulary.GeneralIndustry]
}
