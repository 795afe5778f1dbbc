package guard

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/inputguard/pkg/patterns"
	"github.com/dmitrymomot/inputguard/pkg/validator"
)

var (
	ErrInvalidConfig = errors.New("invalid guard configuration")
	// ErrRejected matches every *Error via errors.Is.
	ErrRejected = errors.New("request rejected")
	// ErrNoRequest is returned by Bind when the request did not pass through Middleware.
	ErrNoRequest = errors.New("request was not checked by the guard middleware")
)

// Error is a terminal rejection from the request pipeline. Like a status
// error it pairs an HTTP status with a stable key; it never holds input text.
type Error struct {
	Status    int
	Code      validator.Code
	Field     string
	Family    patterns.Family
	PatternID string
}

func newError(code validator.Code, field string) *Error {
	return &Error{Status: StatusFor(code), Code: code, Field: field}
}

func (e *Error) Error() string {
	return "request rejected: " + string(e.Code)
}

func (e *Error) Is(target error) bool {
	return target == ErrRejected || target == validator.ErrValidationFailed
}

// ValidationError carries the collected field errors of a schema.
type ValidationError struct {
	Errors validator.FieldErrors
}

func (e *ValidationError) Error() string { return e.Errors.Error() }

func (e *ValidationError) Unwrap() error { return e.Errors }

// StatusFor maps an error code to its HTTP status.
func StatusFor(code validator.Code) int {
	switch code {
	case validator.CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case validator.CodeUnsupportedContentType:
		return http.StatusUnsupportedMediaType
	case validator.CodeMalformedBody, validator.CodeNullByteDetected:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
