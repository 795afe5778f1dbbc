package patterns

import "errors"

var (
	// ErrInvalidDefinition is returned for a signature that cannot be compiled.
	ErrInvalidDefinition = errors.New("invalid pattern definition")

	// ErrDuplicateID is returned when two signatures share an id.
	ErrDuplicateID = errors.New("duplicate pattern id")

	// ErrInvalidTableFile is returned when a table file cannot be decoded.
	ErrInvalidTableFile = errors.New("invalid pattern table file")

	// ErrNilTable is returned when a nil table is swapped into a registry.
	ErrNilTable = errors.New("nil pattern table")
)
