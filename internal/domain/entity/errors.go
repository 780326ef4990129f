package entity

import "errors"

// Standard domain errors
var (
	ErrTokenExpired       = errors.New("Token has expired")
	ErrTokenInvalid       = errors.New("Invalid token")
	ErrUsageLimitExceeded = errors.New("usage limit exceeded: too many tokens used")
	ErrInternalServer     = errors.New("an internal error occurred")
	ErrInvalidRequest     = errors.New("invalid request parameters")
)

// ProcessingError wraps a failure from the reasoning pipeline or the message
// persistence layer, annotated with a user-facing recovery suggestion.
type ProcessingError struct {
	Err        error
	Suggestion string
}

func (e *ProcessingError) Error() string { return e.Err.Error() }

func (e *ProcessingError) Unwrap() error { return e.Err }
