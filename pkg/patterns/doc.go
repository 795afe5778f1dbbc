// Package patterns holds the versioned signature tables used by the
// injection validators.
//
// A Definition describes one signature: an id, the attack Family it belongs
// to, how its expression is matched (literal substring, whole-word token or
// RE2 regex, always case-insensitive) and whether a hit rejects the input or
// only warns. Compile turns a list of definitions into an immutable Table.
//
// The built-in table is available through Default. Operators can ship their
// own table as YAML and load it with LoadFile:
//
//	t, err := patterns.LoadFile("/etc/inputguard/patterns.yaml")
//	if err != nil {
//		return err
//	}
//	if _, err := reg.Swap(t); err != nil {
//		return err
//	}
//
// A Registry publishes the current table through an atomic pointer so tables
// can be replaced at runtime without locking readers. Validators call Load
// once per input and work against that snapshot.
package patterns
