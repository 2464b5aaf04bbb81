// Package errors provides consistent error types for Countdown.
// Validation failures are UserErrors the caller surfaces verbatim;
// store and delivery failures are SystemErrors that get logged and retried.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrPastDate         = errors.New("target date is in the past")
	ErrCapacityExceeded = errors.New("countdown limit reached")
	ErrNotFound         = errors.New("countdown not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrDeliveryFailed   = errors.New("notification delivery failed")
)

// UserError represents an error that the user can fix.
// Examples: unparsable date, past-dated target, capacity exceeded.
type UserError struct {
	Message    string // What happened
	Suggestion string // How to fix it
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion}
}

// SystemError represents a system-level error the user cannot directly fix.
// Examples: store I/O failure, webhook transport failure.
type SystemError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed
}

func (e *SystemError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s during %s: %v", e.Message, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemError creates a SystemError with operation context.
func NewSystemError(op, message string, cause error) *SystemError {
	return &SystemError{Message: message, Cause: cause, Op: op}
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// AsUserError extracts a UserError from an error chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// Is reports whether err matches target, delegating to the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
