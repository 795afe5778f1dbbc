package sanitizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultTruncateSuffix is appended by TruncateDefault.
const DefaultTruncateSuffix = "..."

// StripNullBytes removes every NUL byte. Must run before any pattern check:
// C-based consumers stop at NUL, so "safe\x00<script>" hides the payload.
func StripNullBytes(s string) string {
	if strings.IndexByte(s, 0) < 0 {
		return s
	}
	return strings.ReplaceAll(s, "\x00", "")
}

// NormalizeWhitespace collapses runs of spaces, tabs and newlines into a
// single space and trims the result.
func NormalizeWhitespace(s string) string {
	normalized := whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(normalized)
}

// Truncate shortens s to at most maxLength runes. When s is cut, suffix is
// appended within the limit. A suffix longer than maxLength is dropped and
// the input is hard-cut instead.
func Truncate(s string, maxLength int, suffix string) string {
	if maxLength <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	runes := []rune(s)
	suffixLen := utf8.RuneCountInString(suffix)
	if suffixLen > maxLength {
		return string(runes[:maxLength])
	}

	return string(runes[:maxLength-suffixLen]) + suffix
}

// TruncateDefault is Truncate with the "..." suffix.
func TruncateDefault(s string, maxLength int) string {
	return Truncate(s, maxLength, DefaultTruncateSuffix)
}

// RemoveControlCharacters strips Unicode control characters (category Cc).
// Newlines survive only when keepNewlines is set; tabs and carriage returns
// are always removed.
func RemoveControlCharacters(s string, keepNewlines bool) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' && keepNewlines {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// RemoveFormatCharacters strips invisible runes: format characters (category
// Cf, such as zero-width spaces, soft hyphens and bidi controls), variation
// selectors and other default-ignorable code points. Text renders and reads
// the same without them, but they split words apart for pattern scans.
func RemoveFormatCharacters(s string) string {
	if !strings.ContainsFunc(s, isFormatRune) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isFormatRune(r) {
			return -1
		}
		return r
	}, s)
}

func isFormatRune(r rune) bool {
	if r < utf8.RuneSelf {
		return false
	}
	return unicode.In(r, unicode.Cf, unicode.Variation_Selector, unicode.Other_Default_Ignorable_Code_Point)
}

// NormalizeUnicode applies NFKC normalization so full-width and other
// compatibility forms ("ｓｃｒｉｐｔ") fold into the ASCII patterns match.
func NormalizeUnicode(s string) string {
	return norm.NFKC.String(s)
}

func clampRunes(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	return string([]rune(s)[:maxLength])
}
