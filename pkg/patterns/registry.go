package patterns

import (
	"sync"
	"sync/atomic"
)

// Registry publishes the current Table to concurrent readers without locks.
// Readers call Load once per request and keep using that table even if a
// reload swaps in a newer one meanwhile.
type Registry struct {
	current atomic.Pointer[Table]
}

// NewRegistry returns a registry serving t. Panics on nil.
func NewRegistry(t *Table) *Registry {
	if t == nil {
		panic("patterns: registry requires a table")
	}
	r := &Registry{}
	r.current.Store(t)
	return r
}

// Load returns the table currently in effect.
func (r *Registry) Load() *Table {
	return r.current.Load()
}

// Swap atomically replaces the current table and returns the previous one.
func (r *Registry) Swap(t *Table) (*Table, error) {
	if t == nil {
		return nil, ErrNilTable
	}
	return r.current.Swap(t), nil
}

var (
	defaultTable    = sync.OnceValue(func() *Table { return MustCompile(DefaultVersion, DefaultDefinitions()) })
	defaultRegistry = sync.OnceValue(func() *Registry { return NewRegistry(defaultTable()) })
)

// Default returns the built-in table, compiled once per process.
func Default() *Table {
	return defaultTable()
}

// DefaultRegistry returns the process-wide registry used when callers do not
// supply their own. It starts out serving Default().
func DefaultRegistry() *Registry {
	return defaultRegistry()
}
