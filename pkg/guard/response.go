package guard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/inputguard/pkg/validator"
)

const (
	// EnvelopeCode is the top-level code of every validation failure.
	EnvelopeCode = "VALIDATION_ERROR"
	// InternalCode is used for errors that are not validation failures.
	InternalCode = "INTERNAL_ERROR"
)

// Envelope is the JSON error body written by WriteError.
type Envelope struct {
	Code        string               `json:"code"`
	FieldErrors []EnvelopeFieldError `json:"field_errors"`
}

// EnvelopeFieldError is one entry of Envelope.FieldErrors. Messages are the
// generic text of the code and never include input.
type EnvelopeFieldError struct {
	Field   string         `json:"field"`
	Code    validator.Code `json:"code"`
	Message string         `json:"message"`
}

// NewEnvelope maps err to an HTTP status and response body.
func NewEnvelope(err error) (int, Envelope) {
	env := Envelope{Code: EnvelopeCode, FieldErrors: []EnvelopeFieldError{}}

	var gerr *Error
	if errors.As(err, &gerr) {
		env.FieldErrors = append(env.FieldErrors, EnvelopeFieldError{
			Field:   gerr.Field,
			Code:    gerr.Code,
			Message: gerr.Code.Message(),
		})
		return gerr.Status, env
	}

	var fieldErrs validator.FieldErrors
	var verr *ValidationError
	if errors.As(err, &verr) {
		fieldErrs = verr.Errors
	} else {
		fieldErrs = validator.ExtractFieldErrors(err)
	}

	if len(fieldErrs) == 0 {
		env.Code = InternalCode
		return http.StatusInternalServerError, env
	}

	for _, fe := range fieldErrs {
		env.FieldErrors = append(env.FieldErrors, EnvelopeFieldError{
			Field:   fe.Field,
			Code:    fe.Code,
			Message: fe.Code.Message(),
		})
	}
	return http.StatusUnprocessableEntity, env
}

// WriteError writes the envelope for err with its status.
func WriteError(w http.ResponseWriter, err error) error {
	status, env := NewEnvelope(err)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(env)
}
