package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these to HTTP codes;
// use cases return them wrapped with context via fmt.Errorf %w.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrValidation     = errors.New("invalid input")
	ErrInvalidState   = errors.New("operation not allowed in current workflow state")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	ErrConflict       = errors.New("conflict with current state")
	ErrUnavailable    = errors.New("upstream service unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
)
