// Package lexicon turns free-form descriptive text into an ordered set of
// keywords: normalized, stopword-filtered lemmas followed by a few short
// single-word synonyms per lemma.
package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	maxSynonyms   = 3
	maxSynonymLen = 12
)

// Options overrides the expander's language resources. Nil fields load the defaults.
type Options struct {
	Lemmatizer Lemmatizer
	Thesaurus  SynonymSource
	Stopwords  StopwordSet
}

// Status describes which language resources are loaded.
type Status struct {
	Stopwords        int    `json:"stopwords"`
	Lemmatizer       string `json:"lemmatizer"`
	ThesaurusEntries int    `json:"thesaurus_entries"`
}

// Ready reports whether every resource is available.
func (s Status) Ready() bool {
	return s.Stopwords > 0 && s.Lemmatizer != "" && s.ThesaurusEntries > 0
}

// Expander extracts keywords. It is immutable after construction and safe for concurrent use.
type Expander struct {
	lemmatizer Lemmatizer
	thesaurus  SynonymSource
	stopwords  StopwordSet
}

// New builds an Expander, loading any resource not supplied in opts.
func New(opts Options) (*Expander, error) {
	e := &Expander{
		lemmatizer: opts.Lemmatizer,
		thesaurus:  opts.Thesaurus,
		stopwords:  opts.Stopwords,
	}
	var err error
	if e.stopwords == nil {
		if e.stopwords, err = DefaultStopwords(); err != nil {
			return nil, err
		}
	}
	if e.lemmatizer == nil {
		if e.lemmatizer, err = NewEnglishLemmatizer(); err != nil {
			return nil, err
		}
	}
	if e.thesaurus == nil {
		if e.thesaurus, err = DefaultThesaurus(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Status reports the loaded resources.
func (e *Expander) Status() Status {
	return Status{
		Stopwords:        len(e.stopwords),
		Lemmatizer:       e.lemmatizer.Name(),
		ThesaurusEntries: e.thesaurus.Len(),
	}
}

// ExtractKeywords returns lemmas in text order followed by their synonyms,
// with duplicates removed. Text without any usable word yields an empty slice.
func (e *Expander) ExtractKeywords(text string) []string {
	lemmas := e.lemmas(text)
	if len(lemmas) == 0 {
		return []string{}
	}

	seen := make(map[string]bool, len(lemmas)*(maxSynonyms+1))
	keywords := make([]string, 0, len(lemmas)*(maxSynonyms+1))
	for _, lemma := range lemmas {
		if !seen[lemma] {
			seen[lemma] = true
			keywords = append(keywords, lemma)
		}
	}
	for _, lemma := range lemmas {
		for _, syn := range e.synonyms(lemma) {
			if !seen[syn] {
				seen[syn] = true
				keywords = append(keywords, syn)
			}
		}
	}
	return keywords
}

func (e *Expander) lemmas(text string) []string {
	text = strings.ToLower(norm.NFKC.String(text))
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !isAlpha(tok) || e.stopwords.Contains(tok) {
			continue
		}
		lemma := strings.ToLower(e.lemmatizer.Lemma(tok))
		if !isAlpha(lemma) {
			lemma = tok
		}
		out = append(out, lemma)
	}
	return out
}

// synonyms keeps the first few candidates that are short single alphabetic words.
func (e *Expander) synonyms(lemma string) []string {
	var out []string
	for _, cand := range e.thesaurus.Synonyms(lemma) {
		if len(out) == maxSynonyms {
			break
		}
		syn := strings.ToLower(cand)
		if syn == lemma || len(syn) > maxSynonymLen || !isAlpha(syn) {
			continue
		}
		out = append(out, syn)
	}
	return out
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
