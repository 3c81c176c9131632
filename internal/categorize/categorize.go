// Package categorize sorts names into display buckets by keyword.
package categorize

import (
	"strings"

	"github.com/jonathan/namesmith/internal/vocabulary"
)

// Categories maps a bucket label to its names in input order. Empty buckets are absent.
type Categories map[string][]string

// Categorizer assigns each name to the first matching bucket.
type Categorizer struct {
	rules    []vocabulary.CategoryRule
	fallback string
}

// New builds a Categorizer from the vocabulary's category rules.
func New(v *vocabulary.Vocabulary) *Categorizer {
	return &Categorizer{rules: v.Categories, fallback: v.DefaultCategory}
}

// Categorize buckets names. Rules are tried in priority order against the
// lowercased name; a name matching none goes to the default bucket.
func (c *Categorizer) Categorize(names []string) Categories {
	out := make(Categories)
	for _, name := range names {
		label := c.classify(strings.ToLower(name))
		out[label] = append(out[label], name)
	}
	return out
}

func (c *Categorizer) classify(name string) string {
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) {
				return rule.Label
			}
		}
	}
	return c.fallback
}

// Order returns the bucket labels in priority order, default last.
func (c *Categorizer) Order() []string {
	labels := make([]string, 0, len(c.rules)+1)
	for _, rule := range c.rules {
		labels = append(labels, rule.Label)
	}
	return append(labels, c.fallback)
}

// Ordered returns the non-empty buckets of cats in c's priority order.
func (c *Categorizer) Ordered(cats Categories) []Bucket {
	var out []Bucket
	for _, label := range c.Order() {
		if names := cats[label]; len(names) > 0 {
			out = append(out, Bucket{Label: label, Names: names})
		}
	}
	return out
}

// Bucket is one labelled group of names.
type Bucket struct {
	Label string   `json:"label"`
	Names []string `json:"names"`
}
