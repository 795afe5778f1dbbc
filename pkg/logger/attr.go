package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// CorrelationID records the request correlation id under "correlation_id".
// Empty ids yield an empty Attr.
func CorrelationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("correlation_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Family records an attack family under "family".
func Family[T ~string](f T) slog.Attr {
	return slog.String("family", string(f))
}

// Severity records a signature severity under "severity".
func Severity[T ~string](s T) slog.Attr {
	return slog.String("severity", string(s))
}

// Action records what was done with the input under "action".
func Action[T ~string](a T) slog.Attr {
	return slog.String("action", string(a))
}

// PatternID records the signature id under "pattern_id". Empty ids yield an
// empty Attr.
func PatternID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("pattern_id", id)
}

// FieldName records the payload field under "field". Empty names yield an
// empty Attr.
func FieldName(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("field", name)
}

// SampleHash records a hashed input sample under "sample_hash". Only use it
// on debug records.
func SampleHash(h string) slog.Attr {
	if h == "" {
		return slog.Attr{}
	}
	return slog.String("sample_hash", h)
}

// Code records an error taxonomy code under "code".
func Code[T ~string](c T) slog.Attr {
	return slog.String("code", string(c))
}
