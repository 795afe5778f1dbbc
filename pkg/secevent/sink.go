package secevent

import "log/slog"

// Sink accepts events. Emit must return quickly and never panic; wrap
// untrusted implementations with Safe.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

type nop struct{}

func (nop) Emit(Event) {}

// Nop returns a sink that discards events.
func Nop() Sink { return nop{} }

type multi []Sink

func (m multi) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}

// Multi fans events out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type safe struct {
	next Sink
	log  *slog.Logger
}

// Safe wraps next so a panic in Emit is recovered and logged instead of
// reaching the request path. A nil logger uses slog.Default().
func Safe(next Sink, log *slog.Logger) Sink {
	if log == nil {
		log = slog.Default()
	}
	return &safe{next: next, log: log}
}

func (s *safe) Emit(e Event) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("security event sink panicked", slog.Any("panic", r), slog.String("event_id", e.ID.String()))
		}
	}()
	s.next.Emit(e)
}
