package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the sleepflow library

var (
	// ErrCanceled indicates that a batch was aborted before every task fired
	ErrCanceled = errors.New("operation canceled")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsCanceled returns true if the error reports a canceled batch.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Canceled wraps cause so that the result matches both ErrCanceled and cause.
// A nil cause, or one that already matches ErrCanceled, is returned as is.
func Canceled(cause error) error {
	switch {
	case cause == nil:
		return ErrCanceled
	case errors.Is(cause, ErrCanceled):
		return cause
	default:
		return fmt.Errorf("%w: %w", ErrCanceled, cause)
	}
}

// ValidationError describes a configuration value rejected at construction time.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a suggestion on how to fix the value.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap lets errors.Is match ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
