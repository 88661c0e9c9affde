package quiz

import (
	"errors"
	"fmt"
)

// Sentinel error kinds distinguished by callers. Wrap with %w so that
// errors.Is keeps working through added context.
var (
	// ErrNotFound marks lookups of unknown ids (questions, users).
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks malformed caller input. Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable marks transient infrastructure failures after
	// retries are exhausted.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundf wraps ErrNotFound with context.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Invalidf wraps ErrInvalidInput with context.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}

// Unavailablef wraps ErrUnavailable with context.
func Unavailablef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnavailable)...)
}
