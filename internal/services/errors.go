package services

import (
	"errors"
	"fmt"
)

// ErrSpamRejected signals a tripped honeypot. The client-facing wording is
// deliberately generic; no detail about the check leaks out.
var ErrSpamRejected = errors.New("invalid submission")

// ValidationError is a client-correctable field violation. Message is safe
// to return to the client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Rate-limit scopes.
const (
	ScopeEmail = "email"
	ScopeIP    = "ip"
)

// RateLimitError reports that a caller exceeded the submission limit on
// one of the two scopes.
type RateLimitError struct {
	Scope string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s scope", e.Scope)
}

// Message returns the client-facing wording for the tripped scope.
func (e *RateLimitError) Message() string {
	if e.Scope == ScopeIP {
		return "Too many submissions from this location. Please try again later."
	}
	return "Too many submissions. Please try again later."
}

// PersistenceError wraps a durable-write failure. The cause is logged
// server-side only and never surfaced to the client.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save submission: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
