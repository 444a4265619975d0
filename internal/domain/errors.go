package domain

import "fmt"

// ValidationError reports malformed or out-of-range user input. Recovered
// locally with a re-prompt; never crashes the conversation.
type ValidationError struct {
	Field string
	Hint  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: expected %s", e.Field, e.Hint)
}

// IncompleteProfileError reports a command that needs a finished profile.
// Surfaced as guidance, not a failure.
type IncompleteProfileError struct {
	Missing []string
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("profile incomplete: missing %v", e.Missing)
}

// StoreUnavailableError wraps a collaborator I/O failure. Surfaced to the
// user as a transient notice and left to the transport's retry policy.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }
