package validator

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Rule names of the format validators.
const (
	RuleUUID         = "uuid"
	RuleEmail        = "email"
	RuleURL          = "url"
	RuleAlphanumeric = "alphanumeric"
	RuleLength       = "length"
)

var (
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	tldRegex          = regexp.MustCompile(`^[a-z]{2,63}$`)
)

// DefaultURLSchemes are accepted by URL when no schemes are given.
var DefaultURLSchemes = []string{"http", "https"}

// FormatValidator checks input against a fixed grammar.
type FormatValidator struct {
	name  string
	check func(string) Verdict
}

func (v *FormatValidator) Name() string { return v.name }
func (v *FormatValidator) Kind() Kind   { return KindFormat }
func (v *FormatValidator) sealed()      {}

func (v *FormatValidator) Validate(s string) Verdict { return v.check(s) }

func grammar(name string, ok func(string) bool) *FormatValidator {
	return &FormatValidator{
		name: name,
		check: func(s string) Verdict {
			if ok(s) {
				return Pass()
			}
			return Fail(CodeFieldPatternMismatch, "must be a valid "+name)
		},
	}
}

// UUID accepts the canonical 8-4-4-4-12 hex form of a version 4 UUID.
func UUID() *FormatValidator {
	return grammar(RuleUUID, func(value string) bool {
		// Fast rejection: check length and hyphen positions before parsing
		if len(value) != 36 {
			return false
		}
		if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
			return false
		}

		id, err := uuid.Parse(value)
		if err != nil {
			return false
		}
		return id.Version() == 4 && id.Variant() == uuid.RFC4122
	})
}

// Email accepts a bare address: no display name, non-empty local part and a
// dotted domain with no empty labels.
func Email() *FormatValidator {
	return grammar(RuleEmail, func(value string) bool {
		if strings.TrimSpace(value) == "" {
			return false
		}

		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return false
		}

		local, domain, ok := strings.Cut(addr.Address, "@")
		if !ok || local == "" || strings.Contains(domain, "@") {
			return false
		}
		if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
			return false
		}
		for part := range strings.SplitSeq(domain, ".") {
			if part == "" {
				return false
			}
		}
		return true
	})
}

// URL accepts absolute URLs whose scheme is in schemes (DefaultURLSchemes
// when nil) and that carry a host. With requireTLD the host must be a domain
// name ending in an alphabetic label; IP literals and "localhost" fail.
func URL(schemes []string, requireTLD bool) *FormatValidator {
	if len(schemes) == 0 {
		schemes = DefaultURLSchemes
	}
	allowed := make([]string, len(schemes))
	for i, s := range schemes {
		allowed[i] = strings.ToLower(s)
	}

	return grammar(RuleURL, func(value string) bool {
		if strings.TrimSpace(value) == "" {
			return false
		}

		u, err := url.ParseRequestURI(value)
		if err != nil || u.Host == "" {
			return false
		}
		if !slices.Contains(allowed, strings.ToLower(u.Scheme)) {
			return false
		}

		host := u.Hostname()
		if host == "" {
			return false
		}
		if !requireTLD {
			return true
		}
		if net.ParseIP(host) != nil {
			return false
		}
		i := strings.LastIndexByte(host, '.')
		if i <= 0 {
			return false
		}
		return tldRegex.MatchString(strings.ToLower(host[i+1:]))
	})
}

// Alphanumeric accepts one or more ASCII letters and digits.
func Alphanumeric() *FormatValidator {
	return grammar(RuleAlphanumeric, alphanumericRegex.MatchString)
}

// Length bounds the rune count of the input to [min, max]. A max of zero or
// less means no upper bound.
func Length(min, max int) *FormatValidator {
	if min < 0 || (max > 0 && min > max) {
		panic(fmt.Sprintf("validator: invalid length bounds [%d, %d]", min, max))
	}
	return &FormatValidator{
		name: RuleLength,
		check: func(s string) Verdict {
			n := utf8.RuneCountInString(s)
			switch {
			case n < min:
				return Fail(CodeFieldTooShort, "")
			case max > 0 && n > max:
				return Fail(CodeFieldTooLong, "")
			}
			return Pass()
		},
	}
}

// Matches requires the whole input to match re. The expression is anchored
// on both ends regardless of how it was written.
func Matches(name string, re *regexp.Regexp) *FormatValidator {
	if name == "" || re == nil {
		panic("validator: matches requires a name and an expression")
	}
	full := regexp.MustCompile(`^(?:` + re.String() + `)$`)
	return grammar(name, full.MatchString)
}
