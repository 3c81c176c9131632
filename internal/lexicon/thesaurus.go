package lexicon

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed thesaurus.json
var thesaurusJSON []byte

var errEmpty = errors.New("no entries")

// SynonymSource returns synonym candidates for a lemma, best first.
type SynonymSource interface {
	Synonyms(word string) []string
	Len() int
}

// Thesaurus is an in-memory synonym table. Relations are symmetric: if a
// lists b then b's candidates include a, after b's own entries.
type Thesaurus struct {
	entries map[string][]string
}

// DefaultThesaurus returns the embedded business-vocabulary thesaurus.
func DefaultThesaurus() (*Thesaurus, error) {
	return ParseThesaurus(thesaurusJSON)
}

// LoadThesaurus reads a JSON thesaurus file. An empty path returns the embedded table.
func LoadThesaurus(path string) (*Thesaurus, error) {
	if path == "" {
		return DefaultThesaurus()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResourceError{Resource: "thesaurus", Cause: err}
	}
	return ParseThesaurus(data)
}

// ParseThesaurus decodes a JSON object mapping a word to its synonym list.
func ParseThesaurus(data []byte) (*Thesaurus, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ResourceError{Resource: "thesaurus", Cause: fmt.Errorf("invalid JSON: %w", err)}
	}
	if len(raw) == 0 {
		return nil, &ResourceError{Resource: "thesaurus", Cause: errEmpty}
	}

	heads := make([]string, 0, len(raw))
	for head := range raw {
		heads = append(heads, head)
	}
	sort.Strings(heads)

	entries := make(map[string][]string, len(raw))
	add := func(word, syn string) {
		for _, existing := range entries[word] {
			if existing == syn {
				return
			}
		}
		entries[word] = append(entries[word], syn)
	}

	// Direct entries first so a word's own list keeps its order.
	for _, head := range heads {
		key := strings.ToLower(strings.TrimSpace(head))
		for _, syn := range raw[head] {
			syn = strings.ToLower(strings.TrimSpace(syn))
			if syn != "" && syn != key {
				add(key, syn)
			}
		}
	}
	for _, head := range heads {
		key := strings.ToLower(strings.TrimSpace(head))
		for _, syn := range raw[head] {
			syn = strings.ToLower(strings.TrimSpace(syn))
			if syn != "" && syn != key {
				add(syn, key)
			}
		}
	}
	return &Thesaurus{entries: entries}, nil
}

// Synonyms returns the candidates for word, or nil.
func (t *Thesaurus) Synonyms(word string) []string {
	return t.entries[word]
}

// Len returns the number of words with at least one synonym.
func (t *Thesaurus) Len() int {
	return len(t.entries)
}
