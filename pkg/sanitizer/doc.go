// Package sanitizer provides pure string-to-string transforms that escape or
// strip dangerous content from untrusted input.
//
// Every function is total: it never fails and always returns a string, which
// may be empty. Every function is also idempotent, so applying a sanitizer to
// its own output is a no-op. That property is what makes it safe to sanitize
// at several layers without double-escaping.
//
// # Sanitizers
//
//   - HTML / EscapeHTML – entity-escape markup, or strip everything outside an
//     allow-list of tags.
//   - StripNullBytes – remove NUL bytes.
//   - NormalizeWhitespace – collapse whitespace runs and trim.
//   - Truncate / TruncateDefault – rune-based cut with a suffix, never longer
//     than the limit.
//   - Filename – drop separators and "..", strip leading dots, clamp length.
//   - RemoveControlCharacters – drop Unicode control characters.
//   - NormalizeUnicode – NFKC folding ahead of pattern scans.
//   - SQL – quote/backslash doubling and comment breaking. This is defense in
//     depth, never a replacement for parameterized queries.
//
// # Rules and chains
//
// A Rule pairs a sanitizer with a name. A Chain runs rules in exactly the
// declared order; order matters (null bytes must go before pattern checks)
// and is never changed by the package:
//
//	clean := sanitizer.NewChain(
//	    sanitizer.RuleStripNullBytes,
//	    sanitizer.RuleRemoveControl,
//	    sanitizer.RuleNormalizeWhitespace,
//	    sanitizer.RuleEscapeHTML,
//	)
//	safe := clean.Apply("  <b>hi</b>\x00 ")  // "&lt;b&gt;hi&lt;/b&gt;"
//
// The generic Apply and Compose helpers remain available for ad-hoc
// pipelines over any type.
//
// The package holds no mutable state and is safe for concurrent use.
package sanitizer
