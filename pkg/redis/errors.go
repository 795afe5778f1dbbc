package redis

import "errors"

var (
	ErrInvalidURL        = errors.New("failed to parse redis connection url")
	ErrNotReady          = errors.New("redis did not become ready within the given time period")
	ErrEmptyURL          = errors.New("empty redis connection url")
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
