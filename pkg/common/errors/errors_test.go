package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrCanceled", ErrCanceled, "operation canceled"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanceled(t *testing.T) {
	custom := errors.New("shutdown requested")

	tests := []struct {
		name      string
		cause     error
		want      string
		wantCause error
	}{
		{"nil cause", nil, "operation canceled", ErrCanceled},
		{"already canceled", ErrCanceled, "operation canceled", ErrCanceled},
		{"context canceled", context.Canceled, "operation canceled: context canceled", context.Canceled},
		{"deadline", context.DeadlineExceeded, "operation canceled: context deadline exceeded", context.DeadlineExceeded},
		{"custom cause", custom, "operation canceled: shutdown requested", custom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Canceled(tt.cause)
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !IsCanceled(err) {
				t.Error("result should match ErrCanceled")
			}
			if !errors.Is(err, tt.wantCause) {
				t.Errorf("result should wrap %v", tt.wantCause)
			}
		})
	}
}

func TestIsCanceled(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrCanceled, true},
		{"wrapped", fmt.Errorf("sort: %w", ErrCanceled), true},
		{"bare context error", context.Canceled, false},
		{"unrelated", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCanceled(tt.err); got != tt.want {
				t.Errorf("IsCanceled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "sleepsort",
				Field:  "unit",
				Value:  -1,
				Reason: "must be positive",
			},
			want: "sleepsort: invalid unit=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "sleepsort",
				Field:  "unit",
				Value:  0,
				Reason: "must be positive",
				Hint:   "use a value greater than 0",
			},
			want: "sleepsort: invalid unit=0 (must be positive) - use a value greater than 0",
		},
		{
			name: "string value",
			err: &ValidationError{
				Module: "sleepsort",
				Field:  "name",
				Value:  "",
				Reason: "cannot be empty",
			},
			want: "sleepsort: invalid name= (cannot be empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := &ValidationError{
		Module: "test",
		Field:  "field",
		Value:  0,
		Reason: "test",
	}

	unwrapped := verr.Unwrap()
	if unwrapped != ErrInvalidConfiguration {
		t.Errorf("Unwrap() = %v, want ErrInvalidConfiguration", unwrapped)
	}

	if !errors.Is(verr, ErrInvalidConfiguration) {
		t.Error("ValidationError should wrap ErrInvalidConfiguration")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("module", "field", 123, "test reason")

	if err.Module != "module" {
		t.Errorf("Module = %q, want %q", err.Module, "module")
	}
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Value != 123 {
		t.Errorf("Value = %v, want %v", err.Value, 123)
	}
	if err.Reason != "test reason" {
		t.Errorf("Reason = %q, want %q", err.Reason, "test reason")
	}
	if err.Hint != "" {
		t.Errorf("Hint = %q, want empty string", err.Hint)
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid").
		WithHint("try using a positive value")

	if err.Hint != "try using a positive value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try using a positive value")
	}

	// Should return same instance for chaining
	result := err.WithHint("new hint")
	if result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestIsValidationError(t *testing.T) {
	verr := NewValidationError("test", "field", 0, "invalid")

	if !IsValidationError(verr) {
		t.Error("expected *ValidationError to be detected")
	}
	if !IsValidationError(fmt.Errorf("config: %w", verr)) {
		t.Error("expected wrapped *ValidationError to be detected")
	}
	if IsValidationError(ErrInvalidConfiguration) {
		t.Error("bare sentinel is not a ValidationError")
	}
	if IsValidationError(nil) {
		t.Error("nil is not a ValidationError")
	}
}
