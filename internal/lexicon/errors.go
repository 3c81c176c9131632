package lexicon

import "fmt"

// ResourceError reports a language resource (stopwords, lemma dictionary,
// thesaurus) that could not be loaded. Callers treat it as fatal at startup.
type ResourceError struct {
	Resource string
	Cause    error
}

func (e *ResourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("lexicon resource %s unavailable: %v", e.Resource, e.Cause)
	}
	return fmt.Sprintf("lexicon resource %s unavailable", e.Resource)
}

func (e *ResourceError) Unwrap() error {
	return e.Cause
}
