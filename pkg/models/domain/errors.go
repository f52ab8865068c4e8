package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks a caller-input fault. Handlers map it to a 400.
type ValidationError struct {
	msg string
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError marks a lookup for a resource that does not exist. Handlers
// map it to a 404.
type NotFoundError struct {
	msg string
}

func NewNotFoundError(format string, args ...any) error {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string {
	return e.msg
}

// IsNotFoundError reports whether err wraps a NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
