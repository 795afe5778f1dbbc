package field

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/dmitrymomot/inputguard/pkg/patterns"
	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
	"github.com/dmitrymomot/inputguard/pkg/validator"
)

// Rule names reported for checks owned by the spec rather than a validator.
const (
	RuleLength  = "length"
	RulePattern = "pattern"
	RuleConvert = "convert"
)

// Finding is a non-blocking observation recorded while building a field:
// either a warn-level signature hit or, with Sanitized set, a sanitizer that
// removed hostile characters from the value. For sanitize findings Rule and
// Match.ID name the sanitizer.
type Finding struct {
	Field     string
	Rule      string
	Sanitized bool
	patterns.Match
}

// sanitizeFamilies lists the sanitizers whose changes are reported, with the
// family each one is reported under.
var sanitizeFamilies = map[string]patterns.Family{
	sanitizer.RuleStripNullBytes.Name:      patterns.FamilyNullByte,
	sanitizer.RuleRemoveControl.Name:       patterns.FamilyControlChar,
	sanitizer.RuleRemoveControlKeepNL.Name: patterns.FamilyControlChar,
	sanitizer.RuleRemoveFormat.Name:        patterns.FamilyControlChar,
}

// Value is the type-erased view of a Field.
type Value interface {
	Name() string
	String() string
	Any() any
}

// Definition is the type-erased view of a Spec, used by schemas.
type Definition interface {
	TypeName() string
	Validate() error
	Construct(name, raw string) (Value, []Finding, error)
}

// Field is an immutable value that passed every sanitizer and validator of
// its Spec. The zero Field is never returned alongside a nil error.
type Field[T any] struct {
	name  string
	clean string
	value T
}

// Name returns the field name the value was built for.
func (f Field[T]) Name() string { return f.name }

// Value returns the converted value.
func (f Field[T]) Value() T { return f.value }

// String returns the sanitized text the value was converted from.
func (f Field[T]) String() string { return f.clean }

func (f Field[T]) Any() any { return f.value }

// Spec describes how a raw string becomes a Field[T]: length bounds on the
// raw input, an ordered sanitizer chain, ordered validators, an optional
// full-match pattern and a converter. Specs are immutable and shareable.
type Spec[T any] struct {
	typeName   string
	min, max   int
	sanitizers sanitizer.Chain
	validators []validator.Validator
	pattern    *regexp.Regexp
	convert    func(string) (T, error)
}

type config struct {
	min, max   int
	sanitizers []sanitizer.Rule
	validators []validator.Validator
	pattern    *regexp.Regexp
}

// Option configures a Spec.
type Option func(*config)

// WithBounds limits the rune length of the raw input to [min, max]. A max of
// zero means no upper bound.
func WithBounds(min, max int) Option {
	return func(c *config) {
		c.min, c.max = min, max
	}
}

// WithSanitizers appends rules to the chain in the given order.
func WithSanitizers(rules ...sanitizer.Rule) Option {
	return func(c *config) {
		c.sanitizers = append(c.sanitizers, rules...)
	}
}

// WithValidators appends validators in the given order.
func WithValidators(vs ...validator.Validator) Option {
	return func(c *config) {
		c.validators = append(c.validators, vs...)
	}
}

// WithPattern requires the sanitized value to match re in full.
func WithPattern(re *regexp.Regexp) Option {
	return func(c *config) {
		c.pattern = re
	}
}

// New builds a spec named typeName. convert turns the sanitized string into T.
func New[T any](typeName string, convert func(string) (T, error), opts ...Option) (*Spec[T], error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	s := &Spec[T]{
		typeName:   typeName,
		min:        c.min,
		max:        c.max,
		sanitizers: sanitizer.NewChain(c.sanitizers...),
		validators: slices.Clone(c.validators),
		convert:    convert,
	}
	if c.pattern != nil {
		full, err := regexp.Compile(`^(?:` + c.pattern.String() + `)$`)
		if err != nil {
			return nil, errors.Join(ErrInvalidSpec, err)
		}
		s.pattern = full
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew is like New but panics on an invalid definition.
func MustNew[T any](typeName string, convert func(string) (T, error), opts ...Option) *Spec[T] {
	s, err := New(typeName, convert, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewString builds a spec whose value is the sanitized string itself.
func NewString(typeName string, opts ...Option) (*Spec[string], error) {
	return New(typeName, identity, opts...)
}

// MustNewString is like NewString but panics on an invalid definition.
func MustNewString(typeName string, opts ...Option) *Spec[string] {
	return MustNew(typeName, identity, opts...)
}

func identity(s string) (string, error) { return s, nil }

// Validate reports definition mistakes: negative or inverted bounds, nil
// rules or validators, a missing converter or an empty type name.
func (s *Spec[T]) Validate() error {
	switch {
	case s.typeName == "":
		return fmt.Errorf("%w: empty type name", ErrInvalidSpec)
	case s.min < 0 || s.max < 0:
		return fmt.Errorf("%w: %s: negative length bound", ErrInvalidSpec, s.typeName)
	case s.max > 0 && s.min > s.max:
		return fmt.Errorf("%w: %s: min %d exceeds max %d", ErrInvalidSpec, s.typeName, s.min, s.max)
	case s.convert == nil:
		return fmt.Errorf("%w: %s: nil converter", ErrInvalidSpec, s.typeName)
	}
	for i, r := range s.sanitizers {
		if r.Apply == nil || r.Name == "" {
			return fmt.Errorf("%w: %s: sanitizer %d is incomplete", ErrInvalidSpec, s.typeName, i)
		}
	}
	for i, v := range s.validators {
		if v == nil {
			return fmt.Errorf("%w: %s: validator %d is nil", ErrInvalidSpec, s.typeName, i)
		}
	}
	return nil
}

// TypeName returns the name the spec was created with, e.g. "username".
func (s *Spec[T]) TypeName() string { return s.typeName }

// Bounds returns the raw length bounds. A max of zero means unbounded.
func (s *Spec[T]) Bounds() (min, max int) { return s.min, s.max }

// Sanitizers returns the rule names in the order they run.
func (s *Spec[T]) Sanitizers() []string { return s.sanitizers.Names() }

// Validators returns the validator names in the order they run.
func (s *Spec[T]) Validators() []string {
	names := make([]string, len(s.validators))
	for i, v := range s.validators {
		names[i] = v.Name()
	}
	return names
}

// FromRaw builds the field name from raw. Steps run in a fixed order: length
// bounds on raw, sanitizer chain, validators on the sanitized text, full-match
// pattern, converter. The first failure is returned as a *validator.FieldError;
// warn-level signature hits and sanitize findings are returned whether or not
// construction succeeds.
func (s *Spec[T]) FromRaw(name, raw string) (Field[T], []Finding, error) {
	n := utf8.RuneCountInString(raw)
	switch {
	case n < s.min:
		return Field[T]{}, nil, s.fail(name, validator.CodeFieldTooShort, RuleLength)
	case s.max > 0 && n > s.max:
		return Field[T]{}, nil, s.fail(name, validator.CodeFieldTooLong, RuleLength)
	}

	clean, findings := s.sanitize(name, raw)

	for _, v := range s.validators {
		verdict := v.Validate(clean)
		for _, w := range verdict.Warnings {
			findings = append(findings, Finding{Field: name, Rule: v.Name(), Match: w})
		}
		if !verdict.Safe {
			return Field[T]{}, findings, verdict.FieldError(name, v.Name())
		}
	}

	if s.pattern != nil && !s.pattern.MatchString(clean) {
		return Field[T]{}, findings, s.fail(name, validator.CodeFieldPatternMismatch, RulePattern)
	}

	value, err := s.convert(clean)
	if err != nil {
		return Field[T]{}, findings, s.fail(name, validator.CodeFieldPatternMismatch, RuleConvert)
	}

	return Field[T]{name: name, clean: clean, value: value}, findings, nil
}

func (s *Spec[T]) sanitize(name, raw string) (string, []Finding) {
	var findings []Finding
	clean := raw
	for _, r := range s.sanitizers {
		next := r.Apply(clean)
		if family, ok := sanitizeFamilies[r.Name]; ok && next != clean {
			findings = append(findings, Finding{
				Field:     name,
				Rule:      r.Name,
				Sanitized: true,
				Match:     patterns.Match{ID: r.Name, Family: family, Severity: patterns.SeverityWarn},
			})
		}
		clean = next
	}
	return clean, findings
}

// Parse is FromRaw without findings, for callers that do not emit events.
func (s *Spec[T]) Parse(name, raw string) (Field[T], error) {
	f, _, err := s.FromRaw(name, raw)
	return f, err
}

// Construct implements Definition.
func (s *Spec[T]) Construct(name, raw string) (Value, []Finding, error) {
	f, findings, err := s.FromRaw(name, raw)
	if err != nil {
		return nil, findings, err
	}
	return f, findings, nil
}

func (s *Spec[T]) fail(name string, code validator.Code, rule string) *validator.FieldError {
	fe := validator.NewFieldError(name, code)
	fe.Rule = rule
	return fe
}
