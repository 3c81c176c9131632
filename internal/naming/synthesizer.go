// Package naming synthesizes candidate business names from keywords using
// word templates and the vocabulary's prefix and suffix tables.
package naming

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/namesmith/internal/industry"
	"github.com/jonathan/namesmith/internal/randsrc"
	"github.com/jonathan/namesmith/internal/vocabulary"
)

// ErrNoKeywords is returned when synthesis is asked to work from an empty keyword set.
var ErrNoKeywords = errors.New("naming: no keywords to build names from")

type template int

const (
	prefixKeyword template = iota
	keywordSuffix
	compound
	modified
	templateCount
)

// Synthesizer builds rule-based names. It is safe for concurrent use when its
// random source is.
type Synthesizer struct {
	vocab      *vocabulary.Vocabulary
	classifier *industry.Classifier
	rnd        randsrc.Source
}

// NewSynthesizer returns a Synthesizer. A nil src uses randsrc.Default().
func NewSynthesizer(v *vocabulary.Vocabulary, c *industry.Classifier, src randsrc.Source) *Synthesizer {
	if src == nil {
		src = randsrc.Default()
	}
	return &Synthesizer{vocab: v, classifier: c, rnd: src}
}

// wordPools are the prefix and suffix candidates for one request.
type wordPools struct {
	main     []string
	prefixes []string
	suffixes []string
}

func (s *Synthesizer) pools(keywords []string, tone Tone) wordPools {
	tw, ok := s.vocab.Tone(string(tone))
	if !ok {
		tw, _ = s.vocab.Tone(string(Professional))
	}

	prefixes := make([]string, 0, len(s.vocab.Prefixes)+len(tw.Prefixes))
	prefixes = append(prefixes, s.vocab.Prefixes...)
	prefixes = append(prefixes, tw.Prefixes...)
	if ind := s.classifier.Detect(keywords); ind != industry.General {
		prefixes = append(prefixes, s.classifier.Terms(ind)...)
	}

	suffixes := make([]string, 0, len(s.vocab.Suffixes)+len(tw.Suffixes))
	suffixes = append(suffixes, s.vocab.Suffixes...)
	suffixes = append(suffixes, tw.Suffixes...)

	main := keywords
	if len(main) > s.vocab.MainKeywordLimit {
		main = main[:s.vocab.MainKeywordLimit]
	}
	return wordPools{main: main, prefixes: prefixes, suffixes: suffixes}
}

// GenerateRuleBased makes count attempts, each using one randomly chosen
// template. Names longer than the vocabulary's limit or already produced in
// this batch (ignoring case) are dropped without a retry, so fewer than count
// names is a normal result.
func (s *Synthesizer) GenerateRuleBased(keywords []string, tone Tone, count int) ([]string, error) {
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}
	if count <= 0 {
		return []string{}, nil
	}

	p := s.pools(keywords, tone)
	names := make([]string, 0, count)
	seen := make(map[string]bool, count)
	for i := 0; i < count; i++ {
		name := s.attempt(p)
		key := strings.ToLower(name)
		if seen[key] || utf8.RuneCountInString(name) > s.vocab.MaxNameLength {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	return names, nil
}

func (s *Synthesizer) attempt(p wordPools) string {
	switch template(s.rnd.IntN(int(templateCount))) {
	case prefixKeyword:
		prefix := randsrc.Choice(s.rnd, p.prefixes)
		keyword := randsrc.Choice(s.rnd, p.main)
		return Title(prefix) + Title(keyword)

	case keywordSuffix:
		keyword := randsrc.Choice(s.rnd, p.main)
		suffix := randsrc.Choice(s.rnd, p.suffixes)
		return Title(keyword) + Title(suffix)

	case compound:
		if len(p.main) >= 2 {
			pair := randsrc.Sample(s.rnd, p.main, 2)
			connector := randsrc.Choice(s.rnd, s.vocab.CompoundConnectors)
			return Title(pair[0]) + connector + Title(pair[1])
		}
		keyword := randsrc.Choice(s.rnd, p.main)
		suffix := randsrc.Choice(s.rnd, p.suffixes)
		return Title(keyword) + suffix

	default:
		keyword := randsrc.Choice(s.rnd, p.main)
		mod := s.vocab.Modified
		if randsrc.CoinFlip(s.rnd) {
			return Title(keyword) + randsrc.Choice(s.rnd, mod.Fragments)
		}
		return randsrc.Choice(s.rnd, mod.Leads) + Title(keyword) + randsrc.Choice(s.rnd, mod.Tails)
	}
}
