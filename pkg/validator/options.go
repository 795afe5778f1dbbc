package validator

import "github.com/dmitrymomot/inputguard/pkg/patterns"

type options struct {
	strict        bool
	registry      *patterns.Registry
	allowAbsolute bool
}

// Option configures an injection validator.
type Option func(*options)

// WithStrict makes warn-level signatures block.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithRegistry scans against r instead of patterns.DefaultRegistry().
func WithRegistry(r *patterns.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithAllowAbsolute lets SafePath accept rooted paths and drive letters.
func WithAllowAbsolute(allow bool) Option {
	return func(o *options) { o.allowAbsolute = allow }
}

func buildOptions(opts []Option) options {
	o := options{registry: patterns.DefaultRegistry()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
