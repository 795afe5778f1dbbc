package patterns

import "fmt"

// Family groups signatures by the attack they detect.
type Family string

const (
	FamilyScriptInjection Family = "script_injection"
	FamilyPromptInjection Family = "prompt_injection"
	FamilyPathTraversal   Family = "path_traversal"
	FamilySQLMetachar     Family = "sql_metachar"

	// FamilyNullByte and FamilyControlChar have no signatures; they label
	// events raised by structural checks.
	FamilyNullByte    Family = "null_byte"
	FamilyControlChar Family = "control_char"
)

var scannableFamilies = map[Family]struct{}{
	FamilyScriptInjection: {},
	FamilyPromptInjection: {},
	FamilyPathTraversal:   {},
	FamilySQLMetachar:     {},
}

// Families returns the families that carry signatures, in a stable order.
func Families() []Family {
	return []Family{FamilyScriptInjection, FamilyPromptInjection, FamilyPathTraversal, FamilySQLMetachar}
}

func (f Family) valid() bool {
	_, ok := scannableFamilies[f]
	return ok
}

// Severity tells the caller what to do with a match.
type Severity string

const (
	// SeverityWarn matches are recorded but do not block unless the scan is strict.
	SeverityWarn Severity = "warn"
	// SeverityReject matches block the input.
	SeverityReject Severity = "reject"
)

func (s Severity) valid() bool {
	return s == SeverityWarn || s == SeverityReject
}

// Kind selects how Expr is matched. All kinds are case-insensitive.
type Kind string

const (
	// KindLiteral matches Expr as a substring.
	KindLiteral Kind = "literal"
	// KindToken matches Expr as a whole word.
	KindToken Kind = "token"
	// KindRegex matches Expr as an RE2 regular expression.
	KindRegex Kind = "regex"
)

// Definition is the uncompiled form of a signature, as found in a table file.
type Definition struct {
	ID          string   `yaml:"id"`
	Family      Family   `yaml:"family"`
	Kind        Kind     `yaml:"kind"`
	Expr        string   `yaml:"expr"`
	Severity    Severity `yaml:"severity"`
	Description string   `yaml:"description,omitempty"`
}

// Match identifies the signature that fired. It deliberately carries no
// matched text so it can be logged and returned to clients.
type Match struct {
	ID       string
	Family   Family
	Severity Severity
}

func (m Match) String() string {
	return fmt.Sprintf("%s/%s(%s)", m.Family, m.ID, m.Severity)
}

// Result is the outcome of scanning one input against a Set.
type Result struct {
	// Match is the blocking match, nil when nothing blocked.
	Match *Match
	// Warnings lists non-blocking matches seen before the scan stopped.
	Warnings []Match
}

// Blocked reports whether the scan found a blocking match.
func (r Result) Blocked() bool {
	return r.Match != nil
}
