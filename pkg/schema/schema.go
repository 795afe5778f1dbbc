package schema

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/dmitrymomot/inputguard/pkg/field"
	"github.com/dmitrymomot/inputguard/pkg/validator"
)

// RuleType is reported when a payload value is not a string.
const RuleType = "type"

// ExtraFields decides what happens to payload keys the schema does not declare.
type ExtraFields string

const (
	// ExtraFieldsReject reports every undeclared key as unexpected_field.
	ExtraFieldsReject ExtraFields = "reject"
	// ExtraFieldsIgnore drops undeclared keys silently.
	ExtraFieldsIgnore ExtraFields = "ignore"
)

type entry struct {
	name     string
	def      field.Definition
	required bool
}

// Schema is an ordered set of named field definitions for one payload shape.
// A Schema is immutable once built and safe for concurrent use.
type Schema struct {
	name   string
	fields []entry
	extra  ExtraFields
}

type builder struct {
	fields []entry
	extra  ExtraFields
	errs   []error
}

// Option configures a Schema.
type Option func(*builder)

// Required declares a field that must be present.
func Required(name string, def field.Definition) Option {
	return func(b *builder) { b.add(name, def, true) }
}

// Optional declares a field that may be absent or null.
func Optional(name string, def field.Definition) Option {
	return func(b *builder) { b.add(name, def, false) }
}

// WithExtraFields sets the policy for undeclared keys. Default is reject.
func WithExtraFields(policy ExtraFields) Option {
	return func(b *builder) {
		if policy != ExtraFieldsReject && policy != ExtraFieldsIgnore {
			b.errs = append(b.errs, fmt.Errorf("unknown extra fields policy %q", policy))
			return
		}
		b.extra = policy
	}
}

func (b *builder) add(name string, def field.Definition, required bool) {
	switch {
	case name == "":
		b.errs = append(b.errs, errors.New("field with empty name"))
		return
	case def == nil:
		b.errs = append(b.errs, fmt.Errorf("field %q: nil definition", name))
		return
	}
	if slices.ContainsFunc(b.fields, func(e entry) bool { return e.name == name }) {
		b.errs = append(b.errs, fmt.Errorf("field %q declared twice", name))
		return
	}
	if err := def.Validate(); err != nil {
		b.errs = append(b.errs, fmt.Errorf("field %q: %w", name, err))
		return
	}
	b.fields = append(b.fields, entry{name: name, def: def, required: required})
}

// New builds a schema. All definition problems are reported together.
func New(name string, opts ...Option) (*Schema, error) {
	b := &builder{extra: ExtraFieldsReject}
	if name == "" {
		b.errs = append(b.errs, errors.New("empty schema name"))
	}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchema, name, errors.Join(b.errs...))
	}
	return &Schema{name: name, fields: b.fields, extra: b.extra}, nil
}

// MustNew is like New but panics on an invalid definition.
func MustNew(name string, opts ...Option) *Schema {
	s, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// ExtraFields returns the undeclared key policy.
func (s *Schema) ExtraFields() ExtraFields { return s.extra }

// Fields returns declared field names in order.
func (s *Schema) Fields() []string {
	names := make([]string, len(s.fields))
	for i, e := range s.fields {
		names[i] = e.name
	}
	return names
}

// Outcome is the result of validating one payload. Exactly one of Instance
// and Errors is set.
type Outcome struct {
	Instance *Instance
	Errors   validator.FieldErrors
	// Warnings holds warn-level findings from every field, valid or not.
	Warnings []field.Finding
}

// Valid reports whether the payload produced an instance.
func (o Outcome) Valid() bool { return o.Instance != nil }

// Err returns the collected field errors, or nil when valid.
func (o Outcome) Err() error {
	if o.Valid() {
		return nil
	}
	return o.Errors
}

// Validate checks payload against the schema. Every declared field is
// checked in order and all errors are collected, followed by one
// unexpected_field error per undeclared key in sorted order.
func (s *Schema) Validate(payload map[string]any) Outcome {
	var (
		out    Outcome
		errs   validator.FieldErrors
		values = make(map[string]field.Value, len(s.fields))
	)

	for _, e := range s.fields {
		raw, present := payload[e.name]
		if !present || raw == nil {
			if e.required {
				errs.Add(*validator.NewFieldError(e.name, validator.CodeFieldMissing))
			}
			continue
		}

		str, ok := raw.(string)
		if !ok {
			fe := validator.NewFieldError(e.name, validator.CodeFieldPatternMismatch)
			fe.Rule = RuleType
			errs.Add(*fe)
			continue
		}

		v, findings, err := e.def.Construct(e.name, str)
		out.Warnings = append(out.Warnings, findings...)
		if err != nil {
			errs = append(errs, validator.ExtractFieldErrors(err)...)
			continue
		}
		values[e.name] = v
	}

	if s.extra == ExtraFieldsReject {
		var extra []string
		for key := range payload {
			if !s.declares(key) {
				extra = append(extra, key)
			}
		}
		sort.Strings(extra)
		for _, key := range extra {
			errs.Add(*validator.NewFieldError(key, validator.CodeUnexpectedField))
		}
	}

	if len(errs) > 0 {
		out.Errors = errs
		return out
	}

	out.Instance = &Instance{schema: s.name, order: s.presentOrder(values), values: values}
	return out
}

// ValidateStrings is Validate for flat string payloads such as form values.
func (s *Schema) ValidateStrings(payload map[string]string) Outcome {
	m := make(map[string]any, len(payload))
	for k, v := range payload {
		m[k] = v
	}
	return s.Validate(m)
}

func (s *Schema) declares(name string) bool {
	for _, e := range s.fields {
		if e.name == name {
			return true
		}
	}
	return false
}

func (s *Schema) presentOrder(values map[string]field.Value) []string {
	order := make([]string, 0, len(values))
	for _, e := range s.fields {
		if _, ok := values[e.name]; ok {
			order = append(order, e.name)
		}
	}
	return order
}
