package secevent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the stream key used when RedisOptions.Stream is empty.
const DefaultStream = "inputguard:security-events"

// streamAdder is the subset of redis.UniversalClient the writer needs.
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisOptions configures a RedisWriter.
type RedisOptions struct {
	Stream string
	// MaxLen caps the stream with approximate trimming. Zero disables trimming.
	MaxLen int64
}

// RedisWriter appends events to a Redis stream with XADD, one entry per event.
type RedisWriter struct {
	client streamAdder
	opts   RedisOptions
}

// NewRedisWriter wraps a go-redis client, e.g. *redis.Client.
func NewRedisWriter(client streamAdder, opts RedisOptions) *RedisWriter {
	if client == nil {
		panic("secevent: redis client cannot be nil")
	}
	if opts.Stream == "" {
		opts.Stream = DefaultStream
	}
	return &RedisWriter{client: client, opts: opts}
}

func (w *RedisWriter) Write(ctx context.Context, events []Event) error {
	var errs []error
	for _, e := range events {
		args := &redis.XAddArgs{
			Stream: w.opts.Stream,
			Values: streamValues(e),
		}
		if w.opts.MaxLen > 0 {
			args.MaxLen = w.opts.MaxLen
			args.Approx = true
		}
		if err := w.client.XAdd(ctx, args).Err(); err != nil {
			errs = append(errs, fmt.Errorf("xadd %s: %w", e.ID, err))
		}
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
	}
	return errors.Join(errs...)
}

func streamValues(e Event) map[string]any {
	return map[string]any{
		"id":             e.ID.String(),
		"timestamp":      e.Timestamp.Format(time.RFC3339Nano),
		"correlation_id": e.CorrelationID,
		"family":         string(e.Family),
		"severity":       string(e.Severity),
		"pattern_id":     e.PatternID,
		"field":          e.Field,
		"action":         string(e.Action),
		"sample_hash":    e.SampleHash,
	}
}
