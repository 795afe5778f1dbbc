package secevent

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/inputguard/pkg/patterns"
)

// Action is what the engine did with the offending input.
type Action string

const (
	ActionReject   Action = "reject"
	ActionSanitize Action = "sanitize"
	ActionWarn     Action = "warn"
)

// Event records one security-relevant decision. It never contains the input;
// SampleHash identifies it without revealing it.
type Event struct {
	ID            uuid.UUID         `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	Family        patterns.Family   `json:"family"`
	Severity      patterns.Severity `json:"severity"`
	PatternID     string            `json:"pattern_id,omitempty"`
	Field         string            `json:"field,omitempty"`
	Action        Action            `json:"action"`
	SampleHash    string            `json:"sample_hash,omitempty"`
}

// EventOption sets optional event fields.
type EventOption func(*Event)

// New creates an event with a fresh id and the current UTC time.
func New(family patterns.Family, severity patterns.Severity, action Action, opts ...EventOption) Event {
	e := Event{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Family:    family,
		Severity:  severity,
		Action:    action,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// WithCorrelationID sets the externally supplied request id.
func WithCorrelationID(id string) EventOption {
	return func(e *Event) { e.CorrelationID = id }
}

// WithPatternID sets the signature or check id that fired.
func WithPatternID(id string) EventOption {
	return func(e *Event) { e.PatternID = id }
}

// WithField sets the payload field the input came from.
func WithField(name string) EventOption {
	return func(e *Event) { e.Field = name }
}

// WithSample stores HashSample(sample). The sample itself is not kept.
func WithSample(sample string) EventOption {
	return func(e *Event) {
		if sample != "" {
			e.SampleHash = HashSample(sample)
		}
	}
}

// WithTimestamp overrides the event time.
func WithTimestamp(ts time.Time) EventOption {
	return func(e *Event) { e.Timestamp = ts }
}

// FromMatch builds an event for a signature match.
func FromMatch(m patterns.Match, action Action, opts ...EventOption) Event {
	return New(m.Family, m.Severity, action, append([]EventOption{WithPatternID(m.ID)}, opts...)...)
}
