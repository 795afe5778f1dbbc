package validator

import (
	"fmt"
	"slices"
)

// Kind tells the three validator shapes apart.
type Kind string

const (
	KindPattern   Kind = "pattern"
	KindFormat    Kind = "format"
	KindComposite Kind = "composite"
)

// Validator classifies one string. Implementations are stateless and safe
// for concurrent use. The set of implementations is closed: PatternValidator,
// FormatValidator and CompositeValidator.
type Validator interface {
	Name() string
	Kind() Kind
	Validate(s string) Verdict
	sealed()
}

// CompositeValidator runs its members in declared order. The first unsafe
// verdict is returned; warnings from every member that ran are merged.
type CompositeValidator struct {
	name    string
	members []Validator
}

// Composite groups validators under one name. It panics on a nil member or
// an empty name.
func Composite(name string, members ...Validator) *CompositeValidator {
	if name == "" {
		panic("validator: composite requires a name")
	}
	for i, m := range members {
		if m == nil {
			panic(fmt.Sprintf("validator: composite %q: member %d is nil", name, i))
		}
	}
	return &CompositeValidator{name: name, members: slices.Clone(members)}
}

func (c *CompositeValidator) Name() string { return c.name }
func (c *CompositeValidator) Kind() Kind   { return KindComposite }
func (c *CompositeValidator) sealed()      {}

// Members returns a copy of the member list.
func (c *CompositeValidator) Members() []Validator { return slices.Clone(c.members) }

func (c *CompositeValidator) Validate(s string) Verdict {
	out := Pass()
	for _, m := range c.members {
		v := m.Validate(s)
		out.Warnings = append(out.Warnings, v.Warnings...)
		if !v.Safe {
			v.Warnings = out.Warnings
			return v
		}
	}
	return out
}

// Describe returns a short label such as "pattern:script_injection".
func Describe(v Validator) string {
	switch t := v.(type) {
	case *PatternValidator:
		return "pattern:" + string(t.family)
	case *FormatValidator:
		return "format:" + t.name
	case *CompositeValidator:
		return fmt.Sprintf("composite:%s[%d]", t.name, len(t.members))
	default:
		return "unknown"
	}
}
