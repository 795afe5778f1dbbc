package secevent_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/patterns"
	"github.com/dmitrymomot/inputguard/pkg/secevent"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestLogWriter(t *testing.T) {
	t.Parallel()

	t.Run("levels by action", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := secevent.NewLogWriter(slog.New(slog.NewJSONHandler(&buf, nil)))

		require.NoError(t, w.Write(context.Background(), []secevent.Event{
			secevent.New(patterns.FamilyPromptInjection, patterns.SeverityReject, secevent.ActionReject,
				secevent.WithCorrelationID("req-9"), secevent.WithField("prompt"), secevent.WithSample("payload")),
			secevent.New(patterns.FamilyPromptInjection, patterns.SeverityWarn, secevent.ActionWarn),
		}))

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 2)
		assert.Equal(t, "WARN", lines[0]["level"])
		assert.Equal(t, "req-9", lines[0]["correlation_id"])
		assert.Equal(t, "prompt", lines[0]["field"])
		assert.Equal(t, "secevent", lines[0]["component"])
		assert.NotContains(t, lines[0], "sample_hash")
		assert.Equal(t, "INFO", lines[1]["level"])
	})

	t.Run("sample hash at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := secevent.NewLogWriter(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
		w.Emit(secevent.New(patterns.FamilyScriptInjection, patterns.SeverityReject, secevent.ActionReject,
			secevent.WithSample("<script>")))

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 1)
		assert.Equal(t, secevent.HashSample("<script>"), lines[0]["sample_hash"])
		assert.NotContains(t, buf.String(), "<script>")
	})
}

type fakeStream struct {
	args []*redis.XAddArgs
	err  error
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.args = append(f.args, a)
	return redis.NewStringResult("1-0", f.err)
}

func TestRedisWriter(t *testing.T) {
	t.Parallel()

	t.Run("one entry per event", func(t *testing.T) {
		t.Parallel()

		client := &fakeStream{}
		w := secevent.NewRedisWriter(client, secevent.RedisOptions{MaxLen: 1000})

		events := []secevent.Event{
			secevent.New(patterns.FamilySQLMetachar, patterns.SeverityReject, secevent.ActionReject, secevent.WithPatternID("sql-union-select")),
			secevent.New(patterns.FamilyPathTraversal, patterns.SeverityReject, secevent.ActionReject),
		}
		require.NoError(t, w.Write(context.Background(), events))

		require.Len(t, client.args, 2)
		first := client.args[0]
		assert.Equal(t, secevent.DefaultStream, first.Stream)
		assert.Equal(t, int64(1000), first.MaxLen)
		assert.True(t, first.Approx)

		values, ok := first.Values.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "sql-union-select", values["pattern_id"])
		assert.Equal(t, "sql_metachar", values["family"])
		assert.Equal(t, events[0].ID.String(), values["id"])
	})

	t.Run("no trimming without max len", func(t *testing.T) {
		t.Parallel()

		client := &fakeStream{}
		w := secevent.NewRedisWriter(client, secevent.RedisOptions{Stream: "custom"})
		require.NoError(t, w.Write(context.Background(), []secevent.Event{event("x")}))

		require.Len(t, client.args, 1)
		assert.Equal(t, "custom", client.args[0].Stream)
		assert.Zero(t, client.args[0].MaxLen)
		assert.False(t, client.args[0].Approx)
	})

	t.Run("errors are joined", func(t *testing.T) {
		t.Parallel()

		redisErr := errors.New("connection refused")
		client := &fakeStream{err: redisErr}
		w := secevent.NewRedisWriter(client, secevent.RedisOptions{})

		err := w.Write(context.Background(), []secevent.Event{event("a"), event("b")})
		assert.ErrorIs(t, err, redisErr)
		assert.Len(t, client.args, 2)
	})
}

func TestMetricsSink(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := secevent.NewMetricsSink(reg)

	m.Emit(secevent.New(patterns.FamilyPromptInjection, patterns.SeverityReject, secevent.ActionReject))
	m.Emit(secevent.New(patterns.FamilyPromptInjection, patterns.SeverityReject, secevent.ActionReject))
	m.Emit(secevent.New(patterns.FamilyPromptInjection, patterns.SeverityWarn, secevent.ActionWarn))

	assert.InDelta(t, 2, testutil.ToFloat64(m.Counter().WithLabelValues("prompt_injection", "reject", "reject")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Counter().WithLabelValues("prompt_injection", "warn", "warn")), 0)
}

func TestRegisterDropped(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := secevent.NewAsync(&recorder{}, secevent.AsyncOptions{})
	require.NoError(t, a.Close(context.Background()))
	a.Emit(event("late"))

	secevent.RegisterDropped(reg, a)

	n, err := testutil.GatherAndCount(reg, "inputguard_security_events_dropped_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
