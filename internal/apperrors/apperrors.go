package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error so handlers can map it to an HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindConstraint
	KindAuthentication
)

// Error is the error type surfaced by the service layer.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed or missing input.
func Validation(format string, args ...interface{}) *Error {
	return New(KindValidation, format, args...)
}

// NotFound reports an absent entity.
func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

// Conflict reports a uniqueness violation.
func Conflict(format string, args ...interface{}) *Error {
	return New(KindConflict, format, args...)
}

// Constraint reports a referential-integrity block, e.g. deleting a
// category that products still reference.
func Constraint(format string, args ...interface{}) *Error {
	return New(KindConstraint, format, args...)
}

// Authentication reports a credential mismatch.
func Authentication(format string, args ...interface{}) *Error {
	return New(KindAuthentication, format, args...)
}

// Internal wraps an unexpected failure, preserving the original cause
// for diagnostics.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the classification of err. Errors that are not *Error
// are treated as internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to an HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindConstraint:
		return fiber.StatusBadRequest
	case KindAuthentication:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
