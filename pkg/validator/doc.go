// Package validator classifies untrusted strings as safe or unsafe.
//
// Every validator implements the Validator interface and returns a Verdict.
// The interface is sealed; the three implementations are:
//
//   - PatternValidator scans against a family of the pattern registry
//     (PromptInjection, ScriptInjection, SafePath, SQLMetachar).
//   - FormatValidator checks a fixed grammar (UUID, Email, URL,
//     Alphanumeric, Length, Matches).
//   - CompositeValidator runs several validators in declared order.
//
// Validators hold no mutable state and may be shared between goroutines.
// Pattern validators load the registry's current table once per call, so a
// table swapped in at runtime applies to the next call.
//
// # Usage
//
//	v := validator.ValidatePromptInjection(text)
//	if !v.Safe {
//		return v.FieldError("prompt", validator.RulePromptInjection)
//	}
//	for _, w := range v.Warnings {
//		// emit a warn event
//	}
//
// # Error Handling
//
// FieldError and FieldErrors carry a stable Code from a fixed taxonomy plus
// the rule and pattern id that fired. Messages are generic and never echo the
// input. Both match ErrValidationFailed with errors.Is; ExtractFieldErrors
// unwraps either form.
package validator
