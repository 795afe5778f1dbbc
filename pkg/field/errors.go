package field

import "errors"

// ErrInvalidSpec is returned for a field definition that cannot be used.
var ErrInvalidSpec = errors.New("invalid field spec")
