package validator

import (
	"html"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrymomot/inputguard/pkg/patterns"
	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
)

// Rule names of the injection validators.
const (
	RulePromptInjection = "prompt_injection"
	RuleScriptInjection = "script_injection"
	RuleSafePath        = "safe_path"
	RuleSQLMetachar     = "sql_metachar"
)

// PathAbsoluteID identifies the structural check SafePath applies before
// scanning, reported in verdicts like a signature id.
const PathAbsoluteID = "pt-absolute"

// maxPathDecodeRounds bounds percent-decoding so %252e%252e is caught but
// decoding cannot loop.
const maxPathDecodeRounds = 3

// maxEntityDecodeRounds bounds HTML entity decoding the same way.
const maxEntityDecodeRounds = 2

var driveLetterRegex = regexp.MustCompile(`^[a-zA-Z]:`)

// PatternValidator scans input against one family of the registry's current
// table. The table is loaded once per call, so a concurrent swap never mixes
// two tables inside one verdict.
type PatternValidator struct {
	name     string
	family   patterns.Family
	strict   bool
	registry *patterns.Registry

	decode   func(string) string
	expand   func(string) string
	precheck func(string) (Verdict, bool)
}

func (v *PatternValidator) Name() string { return v.name }
func (v *PatternValidator) Kind() Kind   { return KindPattern }
func (v *PatternValidator) sealed()      {}

// Family returns the attack family the validator scans for.
func (v *PatternValidator) Family() patterns.Family { return v.family }

// Strict reports whether warn-level signatures block.
func (v *PatternValidator) Strict() bool { return v.strict }

func (v *PatternValidator) Validate(s string) Verdict {
	text := sanitizer.NormalizeUnicode(s)
	if v.decode != nil {
		text = v.decode(text)
	}
	if v.precheck != nil {
		if verdict, stop := v.precheck(text); stop {
			return verdict
		}
	}

	tbl := v.registry.Load()
	var warnings []patterns.Match
	for _, c := range v.candidates(text) {
		res := tbl.Scan(v.family, c, v.strict)
		warnings = appendUnique(warnings, res.Warnings)
		if res.Blocked() {
			return detected(*res.Match, warnings)
		}
	}

	return Pass(warnings...)
}

// candidates returns the forms of text that are scanned, text first. NUL
// signatures need the raw text; the stripped forms catch "<scr\x00ipt" and
// phrases split by zero-width or other invisible runes.
func (v *PatternValidator) candidates(text string) []string {
	out := []string{text}
	add := func(c string) {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}

	add(sanitizer.StripNullBytes(text))
	add(sanitizer.RemoveFormatCharacters(out[len(out)-1]))
	if v.expand != nil {
		for _, c := range slices.Clone(out) {
			add(v.expand(c))
		}
	}
	return out
}

func appendUnique(dst, src []patterns.Match) []patterns.Match {
	for _, m := range src {
		dup := false
		for _, d := range dst {
			if d.ID == m.ID {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, m)
		}
	}
	return dst
}

func newPatternValidator(name string, family patterns.Family, o options) *PatternValidator {
	return &PatternValidator{
		name:     name,
		family:   family,
		strict:   o.strict,
		registry: o.registry,
	}
}

// PromptInjection detects attempts to override or extract an LLM's
// instructions.
func PromptInjection(opts ...Option) *PatternValidator {
	return newPatternValidator(RulePromptInjection, patterns.FamilyPromptInjection, buildOptions(opts))
}

// ScriptInjection detects markup that can execute script in a browser.
// Entity-encoded markup such as "jav&#x09;ascript:" is decoded and also
// scanned.
func ScriptInjection(opts ...Option) *PatternValidator {
	v := newPatternValidator(RuleScriptInjection, patterns.FamilyScriptInjection, buildOptions(opts))
	v.expand = decodeEntities
	return v
}

// SQLMetachar detects SQL comment sequences, stacked statements and common
// tautologies. It complements, never replaces, parameterized queries.
func SQLMetachar(opts ...Option) *PatternValidator {
	return newPatternValidator(RuleSQLMetachar, patterns.FamilySQLMetachar, buildOptions(opts))
}

// SafePath rejects relative paths that escape their root. The input is
// percent-decoded up to three times before checking. Rooted paths and drive
// letters are rejected unless WithAllowAbsolute(true) is given.
func SafePath(opts ...Option) *PatternValidator {
	o := buildOptions(opts)
	v := newPatternValidator(RuleSafePath, patterns.FamilyPathTraversal, o)
	v.decode = decodePath
	if !o.allowAbsolute {
		v.precheck = rejectAbsolute
	}
	return v
}

func decodePath(p string) string {
	for range maxPathDecodeRounds {
		next := unescapePercent(p)
		if next == p {
			break
		}
		p = next
	}
	return p
}

// unescapePercent decodes every valid %XX triplet and keeps invalid ones
// as they are, the way lenient servers and filesystems treat them.
func unescapePercent(s string) string {
	i := strings.IndexByte(s, '%')
	if i < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// decodeEntities resolves HTML character references, nested ones included,
// and drops the ASCII tabs and line breaks browsers ignore inside URL
// schemes.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	for range maxEntityDecodeRounds {
		next := html.UnescapeString(s)
		if next == s {
			break
		}
		s = next
	}
	return strings.NewReplacer("\t", "", "\n", "", "\r", "").Replace(s)
}

func rejectAbsolute(p string) (Verdict, bool) {
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) || driveLetterRegex.MatchString(p) {
		return detected(patterns.Match{
			ID:       PathAbsoluteID,
			Family:   patterns.FamilyPathTraversal,
			Severity: patterns.SeverityReject,
		}, nil), true
	}
	return Verdict{}, false
}

// ValidatePromptInjection runs PromptInjection(opts...) on s.
func ValidatePromptInjection(s string, opts ...Option) Verdict {
	return PromptInjection(opts...).Validate(s)
}

// ValidateScripts runs ScriptInjection(opts...) on s.
func ValidateScripts(s string, opts ...Option) Verdict {
	return ScriptInjection(opts...).Validate(s)
}

// ValidateSafePath runs SafePath(opts...) on s.
func ValidateSafePath(s string, opts ...Option) Verdict {
	return SafePath(opts...).Validate(s)
}

// ValidateSQLMetachar runs SQLMetachar(opts...) on s.
func ValidateSQLMetachar(s string, opts ...Option) Verdict {
	return SQLMetachar(opts...).Validate(s)
}
