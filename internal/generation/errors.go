package generation

import "fmt"

// Client input messages.
const (
	MsgNoInput    = "Please provide input text"
	MsgNoKeywords = "No valid keywords found in input"
)

// InputError is a request the service cannot act on. Callers report it to the
// client as-is.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Cause
}
