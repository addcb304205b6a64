package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for list operations.
var (
	// ErrNotFound is matched by errors.Is for every NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrBrokenChain is returned by chain validation when the HEAD/TAIL
	// invariants do not hold.
	ErrBrokenChain = errors.New("broken chain")
)

// FieldError names the offending parameter and what is wrong with it
type FieldError struct {
	Parameter string `json:"parameter"`
	Error     string `json:"error"`
}

// ValidationError is returned when an argument is rejected before any state
// is mutated. Callers usually surface the first entry.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

// NewValidationError builds a ValidationError with a single entry
func NewValidationError(parameter, msg string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Parameter: parameter, Error: msg}}}
}

func (e *ValidationError) Error() string {
	return "Error on validation"
}

// First returns the first field error, or a zero value if there is none
func (e *ValidationError) First() FieldError {
	if len(e.Errors) == 0 {
		return FieldError{}
	}
	return e.Errors[0]
}

// Details renders every field error as "parameter: error" pairs
func (e *ValidationError) Details() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Parameter, fe.Error))
	}
	return strings.Join(parts, "; ")
}

// NotFoundError reports a missing node or resource
type NotFoundError struct {
	Err error
}

// NewNotFoundError wraps a formatted cause
func NewNotFoundError(format string, args ...any) *NotFoundError {
	return &NotFoundError{Err: fmt.Errorf(format, args...)}
}

func (e *NotFoundError) Error() string {
	if e.Err == nil {
		return ErrNotFound.Error()
	}
	return e.Err.Error()
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrNotFound) hold for any NotFoundError
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
