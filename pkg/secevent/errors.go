package secevent

import "errors"

var (
	// ErrSinkClosed is returned by Close when the sink was already closed.
	ErrSinkClosed = errors.New("security event sink is closed")

	// ErrWriteFailed wraps writer errors reported to the async error handler.
	ErrWriteFailed = errors.New("security event write failed")
)
