package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared across bounded contexts. Concrete failures wrap one of
// these so callers can branch with errors.Is.
var (
	// ErrInvalidArgument is returned when a caller passes a value outside the
	// accepted domain of an operation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInconsistentSchedule is returned when committed tasks cannot coexist
	// inside the scheduling window.
	ErrInconsistentSchedule = errors.New("inconsistent schedule")
)

// ValidationError describes a single rejected input value.
type ValidationError struct {
	// Field is the name of the rejected input.
	Field string

	// Message describes the validation failure.
	Message string

	// Value is the rejected value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %q %s (got: %v)", ErrInvalidArgument, e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %q %s", ErrInvalidArgument, e.Field, e.Message)
}

// Unwrap returns ErrInvalidArgument.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, value any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// IsInvalidArgument reports whether err is an invalid argument failure.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsInconsistentSchedule reports whether err is an inconsistent schedule failure.
func IsInconsistentSchedule(err error) bool {
	return errors.Is(err, ErrInconsistentSchedule)
}
