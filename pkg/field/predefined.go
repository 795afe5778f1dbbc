package field

import (
	"regexp"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
	"github.com/dmitrymomot/inputguard/pkg/validator"
)

const (
	maxEmailLength = 254
	maxURLLength   = 2048
	maxPathLength  = 4096
)

var (
	usernameRegex = regexp.MustCompile(`[A-Za-z0-9_-]+`)
	filenameRegex = regexp.MustCompile(`[^/\\\x00]+`)
)

// textChain is the shared cleanup for free text. Whitespace is collapsed on
// both sides of control removal: tabs and newlines turn into spaces first.
func textChain() Option {
	return WithSanitizers(
		sanitizer.RuleStripNullBytes,
		sanitizer.RuleRemoveFormat,
		sanitizer.RuleNormalizeUnicode,
		sanitizer.RuleNormalizeWhitespace,
		sanitizer.RuleRemoveControl,
		sanitizer.RuleNormalizeWhitespace,
		sanitizer.RuleEscapeHTML,
	)
}

// Username accepts 3 to 32 ASCII letters, digits, underscores and hyphens.
func Username() *Spec[string] {
	return MustNewString("username",
		WithBounds(3, 32),
		WithPattern(usernameRegex),
	)
}

// Email accepts a bare email address after trimming surrounding whitespace.
func Email() *Spec[string] {
	return MustNewString("email",
		WithBounds(3, maxEmailLength),
		WithSanitizers(sanitizer.RuleStripNullBytes, sanitizer.RuleNormalizeWhitespace),
		WithValidators(validator.Email()),
	)
}

// UUID accepts a canonical version 4 UUID.
func UUID() *Spec[uuid.UUID] {
	return MustNew("uuid", uuid.Parse,
		WithBounds(36, 36),
		WithValidators(validator.UUID()),
	)
}

// URL accepts an absolute URL with one of schemes, http and https by default.
func URL(schemes ...string) *Spec[string] {
	return MustNewString("url",
		WithBounds(1, maxURLLength),
		WithSanitizers(sanitizer.RuleStripNullBytes, sanitizer.RuleNormalizeWhitespace),
		WithValidators(validator.URL(schemes, false)),
	)
}

// SanitizedString accepts any text of min to max runes and stores it
// cleaned and HTML-escaped.
func SanitizedString(min, max int) *Spec[string] {
	return MustNewString("sanitized_string",
		WithBounds(min, max),
		textChain(),
	)
}

// SafeText is SanitizedString plus a prompt-injection check. Pass
// validator.WithStrict or validator.WithRegistry to tune the scan.
func SafeText(min, max int, opts ...validator.Option) *Spec[string] {
	return MustNewString("safe_text",
		WithBounds(min, max),
		textChain(),
		WithValidators(validator.PromptInjection(opts...)),
	)
}

// BoundedString accepts min to max runes with NUL and control characters
// removed. A non-nil pattern must match the cleaned value in full.
func BoundedString(min, max int, pattern *regexp.Regexp) *Spec[string] {
	opts := []Option{
		WithBounds(min, max),
		WithSanitizers(sanitizer.RuleStripNullBytes, sanitizer.RuleRemoveControl),
	}
	if pattern != nil {
		opts = append(opts, WithPattern(pattern))
	}
	return MustNewString("bounded_string", opts...)
}

// Filename accepts a file name and stores it with separators, ".." and
// leading dots removed. Names that sanitize to nothing are rejected.
func Filename(max int) *Spec[string] {
	if max <= 0 {
		max = sanitizer.DefaultMaxFilenameLength
	}
	return MustNewString("filename",
		WithBounds(1, max),
		WithSanitizers(sanitizer.FilenameRule(max), sanitizer.RuleRemoveControl),
		WithValidators(validator.ScriptInjection()),
		WithPattern(filenameRegex),
	)
}

// SafePath accepts a relative path that cannot escape its root, or any
// non-traversing path when allowAbsolute is set. The path is not rewritten.
func SafePath(allowAbsolute bool, opts ...validator.Option) *Spec[string] {
	vopts := append(slices.Clone(opts), validator.WithAllowAbsolute(allowAbsolute))
	return MustNewString("safe_path",
		WithBounds(1, maxPathLength),
		WithValidators(validator.SafePath(vopts...)),
	)
}
