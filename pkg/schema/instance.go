package schema

import "github.com/dmitrymomot/inputguard/pkg/field"

// Instance holds the validated fields of one payload. Optional fields that
// were absent are not present.
type Instance struct {
	schema string
	order  []string
	values map[string]field.Value
}

// Schema returns the name of the schema that produced the instance.
func (i *Instance) Schema() string { return i.schema }

// Has reports whether name was present and valid.
func (i *Instance) Has(name string) bool {
	_, ok := i.values[name]
	return ok
}

// Names returns present field names in declaration order.
func (i *Instance) Names() []string {
	out := make([]string, len(i.order))
	copy(out, i.order)
	return out
}

// Value returns the type-erased field.
func (i *Instance) Value(name string) (field.Value, bool) {
	v, ok := i.values[name]
	return v, ok
}

// String returns the sanitized text of name, or "" when absent.
func (i *Instance) String(name string) string {
	if v, ok := i.values[name]; ok {
		return v.String()
	}
	return ""
}

// Get returns the typed value of name. ok is false when the field is absent
// or holds a different type.
func Get[T any](i *Instance, name string) (value T, ok bool) {
	v, present := i.values[name]
	if !present {
		return value, false
	}
	value, ok = v.Any().(T)
	return value, ok
}
