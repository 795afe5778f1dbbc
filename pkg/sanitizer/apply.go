package sanitizer

// Apply creates functional composition pipeline for sanitization transformations.
// Useful for building complex sanitization chains while maintaining type safety.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value

	for _, transform := range transforms {
		result = transform(result)
	}

	return result
}

// Compose creates reusable sanitization pipelines that can be stored and reused.
// Preferred over repeated Apply calls when the same transformation chain is used multiple times.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

// Rule is a named, pure string transform. The name identifies the rule in
// field definitions and error reports; it never changes what the rule does.
type Rule struct {
	Name  string
	Apply func(string) string
}

// NewRule builds a Rule. Panics on an empty name or nil function: rules are
// declared at startup and a malformed one is a programming error.
func NewRule(name string, fn func(string) string) Rule {
	if name == "" {
		panic("sanitizer: rule name cannot be empty")
	}
	if fn == nil {
		panic("sanitizer: rule " + name + " has nil function")
	}
	return Rule{Name: name, Apply: fn}
}

// Chain is an ordered list of rules. Rules run exactly in declared order;
// a chain is never reordered or deduplicated.
type Chain []Rule

// NewChain copies rules into a new chain so later edits to the caller's
// slice cannot change the chain.
func NewChain(rules ...Rule) Chain {
	c := make(Chain, len(rules))
	copy(c, rules)
	return c
}

// Apply runs every rule in order and returns the final value.
func (c Chain) Apply(s string) string {
	for _, r := range c {
		s = r.Apply(s)
	}
	return s
}

// Names returns rule names in execution order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, r := range c {
		names[i] = r.Name
	}
	return names
}
