package validator

import (
	"github.com/dmitrymomot/inputguard/pkg/patterns"
)

// Verdict is the outcome of one validator. A zero Verdict is unsafe with no
// detail; use Pass for a safe result.
type Verdict struct {
	Safe      bool
	Code      Code
	Family    patterns.Family
	PatternID string
	Severity  patterns.Severity
	Reason    string
	// Warnings lists non-blocking signature hits. Safe verdicts may carry them.
	Warnings []patterns.Match
}

// Pass returns a safe verdict carrying the given warnings.
func Pass(warnings ...patterns.Match) Verdict {
	return Verdict{Safe: true, Warnings: warnings}
}

// Fail returns an unsafe verdict with a generic message for code.
func Fail(code Code, reason string) Verdict {
	if reason == "" {
		reason = code.Message()
	}
	return Verdict{Code: code, Reason: reason, Severity: patterns.SeverityReject}
}

// detected reports a blocking match. The verdict severity is always reject:
// a warn signature only blocks when strict mode escalated it.
func detected(m patterns.Match, warnings []patterns.Match) Verdict {
	return Verdict{
		Code:      CodeInjectionDetected,
		Family:    m.Family,
		PatternID: m.ID,
		Severity:  patterns.SeverityReject,
		Reason:    string(m.Family) + " detected",
		Warnings:  warnings,
	}
}

// FieldError converts an unsafe verdict into a FieldError for field. The rule
// is the name of the validator that produced the verdict. Returns nil for
// safe verdicts.
func (v Verdict) FieldError(field, rule string) *FieldError {
	if v.Safe {
		return nil
	}
	code := v.Code
	if code == "" {
		code = CodeFieldPatternMismatch
	}
	return &FieldError{
		Field:     field,
		Code:      code,
		Rule:      rule,
		PatternID: v.PatternID,
		Family:    v.Family,
		Message:   code.Message(),
	}
}
