package ainame

import (
	"errors"
	"fmt"

	"github.com/jonathan/namesmith/internal/llm"
)

// ErrUnavailable is returned when no language model is configured.
var ErrUnavailable = errors.New("ainame: no language model configured")

// ProviderError represents a failed or unusable language model call
type ProviderError struct {
	Provider llm.Provider
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s name source: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s name source: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
