package lexicon

import (
	"bufio"
	"bytes"
	_ "embed"
	"strings"
)

//go:embed stopwords_en.txt
var stopwordsEN []byte

// StopwordSet is a set of lowercase function words dropped during tokenization.
type StopwordSet map[string]struct{}

// Contains reports whether word is a stopword.
func (s StopwordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// DefaultStopwords returns the embedded English stopword list.
func DefaultStopwords() (StopwordSet, error) {
	return ParseStopwords(stopwordsEN)
}

// ParseStopwords reads one word per line. Blank lines and lines starting with '#' are ignored.
func ParseStopwords(data []byte) (StopwordSet, error) {
	set := make(StopwordSet)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ResourceError{Resource: "stopwords", Cause: err}
	}
	if len(set) == 0 {
		return nil, &ResourceError{Resource: "stopwords", Cause: errEmpty}
	}
	return set, nil
}
