package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/inputguard/pkg/patterns"
)

// ErrValidationFailed matches every FieldError and FieldErrors via errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// Code is a stable, client-facing error identifier.
type Code string

const (
	CodeTooLarge               Code = "too_large"
	CodeUnsupportedContentType Code = "unsupported_content_type"
	CodeMalformedBody          Code = "malformed_body"
	CodeNullByteDetected       Code = "null_byte_detected"
	CodeFieldMissing           Code = "field_missing"
	CodeFieldTooShort          Code = "field_too_short"
	CodeFieldTooLong           Code = "field_too_long"
	CodeFieldPatternMismatch   Code = "field_pattern_mismatch"
	CodeInjectionDetected      Code = "injection_detected"
	CodeUnexpectedField        Code = "unexpected_field"
)

var defaultMessages = map[Code]string{
	CodeTooLarge:               "request body is too large",
	CodeUnsupportedContentType: "content type is not supported",
	CodeMalformedBody:          "request body could not be parsed",
	CodeNullByteDetected:       "input contains a null byte",
	CodeFieldMissing:           "field is required",
	CodeFieldTooShort:          "value is too short",
	CodeFieldTooLong:           "value is too long",
	CodeFieldPatternMismatch:   "value has an invalid format",
	CodeInjectionDetected:      "value contains disallowed content",
	CodeUnexpectedField:        "field is not allowed",
}

// Message returns the generic message for c. The text never depends on the input.
func (c Code) Message() string {
	if m, ok := defaultMessages[c]; ok {
		return m
	}
	return "invalid value"
}

// FieldError describes one rejected field. It names the rule and signature
// that fired but never carries the offending text.
type FieldError struct {
	Field     string          `json:"field"`
	Code      Code            `json:"code"`
	Rule      string          `json:"rule,omitempty"`
	PatternID string          `json:"pattern_id,omitempty"`
	Family    patterns.Family `json:"family,omitempty"`
	Message   string          `json:"message"`
}

// NewFieldError builds a FieldError with the code's default message.
func NewFieldError(field string, code Code) *FieldError {
	return &FieldError{Field: field, Code: code, Message: code.Message()}
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidationFailed
}

// FieldErrors is an ordered collection of field errors.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(fe))
	for _, err := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Code))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (fe *FieldErrors) Add(err FieldError) {
	*fe = append(*fe, err)
}

func (fe FieldErrors) Has(field string) bool {
	for _, err := range fe {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the errors recorded for field, in order.
func (fe FieldErrors) Get(field string) []FieldError {
	var out []FieldError
	for _, err := range fe {
		if err.Field == field {
			out = append(out, err)
		}
	}
	return out
}

// Fields returns field names in first-seen order.
func (fe FieldErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range fe {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// Codes returns the code of every error, in order.
func (fe FieldErrors) Codes() []Code {
	codes := make([]Code, len(fe))
	for i, err := range fe {
		codes[i] = err.Code
	}
	return codes
}

func (fe FieldErrors) IsEmpty() bool {
	return len(fe) == 0
}

// ExtractFieldErrors returns the field errors carried by err. A single
// *FieldError is returned as a one-element slice.
func ExtractFieldErrors(err error) FieldErrors {
	if err == nil {
		return nil
	}

	var many FieldErrors
	if errors.As(err, &many) {
		return many
	}

	var one *FieldError
	if errors.As(err, &one) {
		return FieldErrors{*one}
	}

	return nil
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}
