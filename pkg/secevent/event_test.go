package secevent_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/patterns"
	"github.com/dmitrymomot/inputguard/pkg/secevent"
)

func TestNew(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := secevent.New(patterns.FamilyPromptInjection, patterns.SeverityReject, secevent.ActionReject,
		secevent.WithCorrelationID("req-1"),
		secevent.WithField("prompt"),
		secevent.WithPatternID("pi-ignore-previous"),
		secevent.WithSample("ignore previous instructions"),
		secevent.WithTimestamp(ts),
	)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, ts, e.Timestamp)
	assert.Equal(t, "req-1", e.CorrelationID)
	assert.Equal(t, "prompt", e.Field)
	assert.Equal(t, "pi-ignore-previous", e.PatternID)
	assert.Equal(t, secevent.HashSample("ignore previous instructions"), e.SampleHash)
	assert.NotContains(t, e.SampleHash, "ignore")
}

func TestNew_EmptySampleLeavesHashEmpty(t *testing.T) {
	t.Parallel()

	e := secevent.New(patterns.FamilyPathTraversal, patterns.SeverityWarn, secevent.ActionWarn, secevent.WithSample(""))
	assert.Empty(t, e.SampleHash)
}

func TestFromMatch(t *testing.T) {
	t.Parallel()

	m := patterns.Match{ID: "si-script-tag", Family: patterns.FamilyScriptInjection, Severity: patterns.SeverityReject}
	e := secevent.FromMatch(m, secevent.ActionReject, secevent.WithField("bio"))

	assert.Equal(t, patterns.FamilyScriptInjection, e.Family)
	assert.Equal(t, patterns.SeverityReject, e.Severity)
	assert.Equal(t, "si-script-tag", e.PatternID)
	assert.Equal(t, "bio", e.Field)
	assert.Equal(t, secevent.ActionReject, e.Action)
}

func TestHashSample(t *testing.T) {
	t.Parallel()

	t.Run("stable", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, secevent.HashSample("abc"), secevent.HashSample("abc"))
		assert.NotEqual(t, secevent.HashSample("abc"), secevent.HashSample("abd"))
		assert.Len(t, secevent.HashSample("abc"), 64)
	})

	t.Run("only prefix is hashed", func(t *testing.T) {
		t.Parallel()
		prefix := strings.Repeat("x", secevent.MaxSampleBytes)
		assert.Equal(t, secevent.HashSample(prefix+"tail-1"), secevent.HashSample(prefix+"tail-2"))
	})
}

func TestMulti(t *testing.T) {
	t.Parallel()

	var got []string
	a := secevent.SinkFunc(func(e secevent.Event) { got = append(got, "a:"+e.PatternID) })
	b := secevent.SinkFunc(func(e secevent.Event) { got = append(got, "b:"+e.PatternID) })

	sink := secevent.Multi(a, nil, b)
	sink.Emit(secevent.New(patterns.FamilySQLMetachar, patterns.SeverityReject, secevent.ActionReject, secevent.WithPatternID("x")))

	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestSafe_RecoversPanic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	sink := secevent.Safe(secevent.SinkFunc(func(secevent.Event) { panic("boom") }), log)

	require.NotPanics(t, func() {
		sink.Emit(secevent.New(patterns.FamilyScriptInjection, patterns.SeverityReject, secevent.ActionReject))
	})
	assert.Contains(t, buf.String(), "security event sink panicked")
	assert.Contains(t, buf.String(), "boom")
}

func TestNop(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		secevent.Nop().Emit(secevent.Event{})
	})
}
