// Package field builds immutable, validated values from untrusted strings.
//
// A Spec declares the construction steps for one kind of value and FromRaw
// runs them in this order:
//
//  1. rune length of the raw input against the bounds
//  2. the sanitizer chain, in declared order
//  3. each validator against the sanitized text, in declared order
//  4. the optional full-match pattern
//  5. the converter from string to T
//
// The first failure yields a *validator.FieldError naming the rule and, for
// injection checks, the signature id. The error never contains the input.
// Warn-level signature hits are returned as findings so the caller can emit
// security events for them.
//
//	name, findings, err := field.Username().FromRaw("username", raw)
//	if err != nil {
//		return err
//	}
//	_ = findings
//	fmt.Println(name.Value())
//
// Length bounds apply to the raw input. Escaping sanitizers may make the
// stored value longer than the raw one.
package field
