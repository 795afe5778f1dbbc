package secevent

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsSink counts events by family, severity and action.
type MetricsSink struct {
	events *prometheus.CounterVec
}

// NewMetricsSink registers inputguard_security_events_total with reg.
// A nil reg uses prometheus.DefaultRegisterer. Registering twice on the
// same registry panics.
func NewMetricsSink(reg prometheus.Registerer) *MetricsSink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &MetricsSink{
		events: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "inputguard",
				Name:      "security_events_total",
				Help:      "Security events emitted by the input validation engine.",
			},
			[]string{"family", "severity", "action"},
		),
	}
}

func (m *MetricsSink) Emit(e Event) {
	m.events.WithLabelValues(string(e.Family), string(e.Severity), string(e.Action)).Inc()
}

// Counter exposes the underlying vector, mainly for tests.
func (m *MetricsSink) Counter() *prometheus.CounterVec {
	return m.events
}

// RegisterDropped exposes a's drop counter on reg as
// inputguard_security_events_dropped_total.
func RegisterDropped(reg prometheus.Registerer, a *Async) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	promauto.With(reg).NewCounterFunc(
		prometheus.CounterOpts{
			Namespace: "inputguard",
			Name:      "security_events_dropped_total",
			Help:      "Security events dropped because the async buffer was full.",
		},
		func() float64 { return float64(a.Dropped()) },
	)
}
