package schema

import "errors"

// ErrInvalidSchema is returned for a schema definition that cannot be used.
var ErrInvalidSchema = errors.New("invalid schema")
