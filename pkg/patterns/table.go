package patterns

import (
	"fmt"
	"regexp"
	"strings"
)

type signature struct {
	Match
	kind    Kind
	literal string
	re      *regexp.Regexp
}

func (s signature) matches(lower string) bool {
	if s.kind == KindLiteral {
		return strings.Contains(lower, s.literal)
	}
	return s.re.MatchString(lower)
}

// Set is an ordered, compiled group of signatures for one family.
// A Set is immutable and safe for concurrent use.
type Set struct {
	family Family
	sigs   []signature
}

// Family returns the attack family the set covers.
func (s *Set) Family() Family { return s.family }

// Len returns the number of signatures.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.sigs)
}

// IDs returns signature ids in scan order.
func (s *Set) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, len(s.sigs))
	for i, sig := range s.sigs {
		ids[i] = sig.ID
	}
	return ids
}

// Scan checks text against every signature in order. The first reject match
// stops the scan; warn matches are collected and only block when strict is set,
// in which case the first match of any severity stops the scan.
func (s *Set) Scan(text string, strict bool) Result {
	var res Result
	if s.Len() == 0 || text == "" {
		return res
	}

	lower := strings.ToLower(text)
	for _, sig := range s.sigs {
		if !sig.matches(lower) {
			continue
		}
		m := sig.Match
		if strict || m.Severity == SeverityReject {
			res.Match = &m
			return res
		}
		res.Warnings = append(res.Warnings, m)
	}
	return res
}

// Table holds one compiled Set per family under a version label.
// Tables are never modified after Compile returns; to change patterns build
// a new table and swap it into a Registry.
type Table struct {
	version string
	sets    map[Family]*Set
	defs    []Definition
}

// Compile validates and compiles definitions into a table. Definitions keep
// their relative order inside each family.
func Compile(version string, defs []Definition) (*Table, error) {
	if strings.TrimSpace(version) == "" {
		return nil, fmt.Errorf("%w: table version is required", ErrInvalidDefinition)
	}

	t := &Table{
		version: version,
		sets:    make(map[Family]*Set, len(scannableFamilies)),
		defs:    make([]Definition, 0, len(defs)),
	}
	for _, f := range Families() {
		t.sets[f] = &Set{family: f}
	}

	seen := make(map[string]struct{}, len(defs))
	for i, d := range defs {
		sig, err := compileDefinition(d)
		if err != nil {
			return nil, fmt.Errorf("signature #%d: %w", i, err)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, d.ID)
		}
		seen[d.ID] = struct{}{}

		set := t.sets[d.Family]
		set.sigs = append(set.sigs, sig)
		t.defs = append(t.defs, d)
	}

	return t, nil
}

// MustCompile is like Compile but panics on error. Use it for tables built
// into the binary, where a bad pattern is a programming mistake.
func MustCompile(version string, defs []Definition) *Table {
	t, err := Compile(version, defs)
	if err != nil {
		panic(fmt.Sprintf("patterns: %v", err))
	}
	return t
}

func compileDefinition(d Definition) (signature, error) {
	switch {
	case strings.TrimSpace(d.ID) == "":
		return signature{}, fmt.Errorf("%w: empty id", ErrInvalidDefinition)
	case !d.Family.valid():
		return signature{}, fmt.Errorf("%w: %s: unknown family %q", ErrInvalidDefinition, d.ID, d.Family)
	case !d.Severity.valid():
		return signature{}, fmt.Errorf("%w: %s: unknown severity %q", ErrInvalidDefinition, d.ID, d.Severity)
	case d.Expr == "":
		return signature{}, fmt.Errorf("%w: %s: empty expression", ErrInvalidDefinition, d.ID)
	}

	sig := signature{
		Match: Match{ID: d.ID, Family: d.Family, Severity: d.Severity},
		kind:  d.Kind,
	}

	var expr string
	switch d.Kind {
	case KindLiteral:
		sig.literal = strings.ToLower(d.Expr)
		return sig, nil
	case KindToken:
		expr = `(?i)\b` + regexp.QuoteMeta(d.Expr) + `\b`
	case KindRegex:
		expr = d.Expr
		if !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
	default:
		return signature{}, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidDefinition, d.ID, d.Kind)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return signature{}, fmt.Errorf("%w: %s: %v", ErrInvalidDefinition, d.ID, err)
	}
	sig.re = re
	return sig, nil
}

// Version returns the label the table was compiled with.
func (t *Table) Version() string { return t.version }

// Set returns the signatures for f. Unknown families yield an empty set.
func (t *Table) Set(f Family) *Set {
	if s, ok := t.sets[f]; ok {
		return s
	}
	return &Set{family: f}
}

// Scan is shorthand for t.Set(f).Scan(text, strict).
func (t *Table) Scan(f Family, text string, strict bool) Result {
	return t.Set(f).Scan(text, strict)
}

// Len returns the total number of signatures.
func (t *Table) Len() int { return len(t.defs) }

// Definitions returns a copy of the source definitions in compile order.
func (t *Table) Definitions() []Definition {
	out := make([]Definition, len(t.defs))
	copy(out, t.defs)
	return out
}
