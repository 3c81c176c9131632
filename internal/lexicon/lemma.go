package lexicon

import (
	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Lemmatizer reduces an inflected word to its dictionary form.
type Lemmatizer interface {
	Lemma(word string) string
	Name() string
}

type golemLemmatizer struct {
	lem *golem.Lemmatizer
}

// NewEnglishLemmatizer loads golem's embedded English dictionary.
func NewEnglishLemmatizer() (Lemmatizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, &ResourceError{Resource: "lemmatizer", Cause: err}
	}
	return &golemLemmatizer{lem: lem}, nil
}

// Lemma returns the shortest base form golem knows for word. A surface form
// shorter than every base form is kept, so plurals like "data" and "media"
// stay intact instead of becoming "datum" and "medium".
func (g *golemLemmatizer) Lemma(word string) string {
	if !g.lem.InDict(word) {
		return word
	}
	best := ""
	for _, lemma := range g.lem.Lemmas(word) {
		if best == "" || len(lemma) < len(best) {
			best = lemma
		}
	}
	if best == "" || len(word) < len(best) {
		return word
	}
	return best
}

func (g *golemLemmatizer) Name() string {
	return "golem/en"
}
