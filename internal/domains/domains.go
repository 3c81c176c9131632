// Package domains suggests domain names for a business name. Availability is
// simulated; no registrar is queried.
package domains

import (
	"strings"
	"unicode"

	"github.com/jonathan/namesmith/internal/randsrc"
	"github.com/jonathan/namesmith/internal/types"
)

// TLDs are the suffixes suggested for every name, in display order.
var TLDs = []string{".com", ".net", ".org", ".io"}

// Note is attached to every response.
const Note = "This is a demo. Real domain checking requires a domain API service."

// Checker builds domain suggestions.
type Checker struct {
	src randsrc.Source
}

// NewChecker returns a Checker. A nil src uses the process-wide source.
func NewChecker(src randsrc.Source) *Checker {
	if src == nil {
		src = randsrc.Default()
	}
	return &Checker{src: src}
}

// Label lowercases name and keeps only characters valid in a domain label.
func Label(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

// Suggest returns one domain per TLD for name. It returns nil when the name has
// no usable characters.
func Suggest(name string) []string {
	label := Label(name)
	if label == "" {
		return nil
	}
	out := make([]string, 0, len(TLDs))
	for _, tld := range TLDs {
		out = append(out, label+tld)
	}
	return out
}

// Check returns the suggestions for name with a coin-flip availability for each.
func (c *Checker) Check(name string) *types.DomainCheckResponse {
	suggestions := Suggest(name)
	availability := make(map[string]bool, len(suggestions))
	for _, d := range suggestions {
		availability[d] = randsrc.CoinFlip(c.src)
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return &types.DomainCheckResponse{
		BusinessName:      name,
		DomainSuggestions: suggestions,
		Availability:      availability,
		Note:              Note,
	}
}
