package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two recoverable outcome classes of entity
// operations. Both are always reported to the immediate caller as a
// structured rejection and never abort anything beyond the operation that
// produced them.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InvalidInputf wraps ErrInvalidInput with a formatted message.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...)
}

// IsNotFound reports whether err is a not-found rejection.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput reports whether err is an invalid-input rejection.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
