package guard_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/guard"
	"github.com/dmitrymomot/inputguard/pkg/secevent"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []secevent.Event
}

func (r *eventRecorder) Emit(e secevent.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) all() []secevent.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]secevent.Event(nil), r.events...)
}

type stepRecorder struct {
	mu    sync.Mutex
	steps []guard.Step
}

func (r *stepRecorder) observe(s guard.Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, s)
}

func (r *stepRecorder) all() []guard.Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]guard.Step(nil), r.steps...)
}

func newGuard(t *testing.T, cfg guard.Config, opts ...guard.Option) *guard.Guard {
	t.Helper()
	g, err := guard.New(cfg, opts...)
	require.NoError(t, err)
	return g
}
