// Package apperr classifies failures the core can raise, per spec.md §7's
// taxonomy, so callers can apply the right recovery policy without string
// matching on error messages.
package apperr

import (
	"errors"
	"fmt"
)

// Code is one of the taxonomy tags spec.md §7 defines.
type Code string

const (
	Validation         Code = "VALIDATION"
	InvalidTransition  Code = "INVALID_TRANSITION"
	NoCommitment       Code = "NO_COMMITMENT"
	SimulationFailed   Code = "SIMULATION_FAILED"
	VerificationFailed Code = "VERIFICATION_FAILED"
	SessionComplete    Code = "SESSION_COMPLETE"
	Internal           Code = "INTERNAL"
)

// Error wraps an underlying error with a classification tag. User-visible
// failure always identifies Code; Err's details are not surfaced in
// production (spec.md §7).
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap classifies an existing error.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the Code of err if it (or something it wraps) is an *Error,
// an empty Code if err is nil, and Internal otherwise.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}
