// Package validation defines the caller-correctable error shared by the scheduling engines.
package validation

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *Error through errors.Is.
var ErrValidation = errors.New("validation failed")

// Error reports an input that was rejected before any state was changed.
type Error struct {
	Field  string
	Reason string
}

// Errorf builds an *Error for field with a formatted reason.
func Errorf(field, format string, args ...interface{}) error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *Error) Is(target error) bool {
	return target == ErrValidation
}
