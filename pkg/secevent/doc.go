// Package secevent defines the security events emitted by the validation
// engine and the sinks that forward them.
//
// An Event names the attack family, severity, signature id, field and action
// taken, plus the opaque correlation id of the request. It never carries the
// offending input; HashSample gives a stable digest for grouping instead.
//
// Sink.Emit has no return value and must not block. Slow backends go behind
// Async, which buffers events for a background worker and drops them when
// the buffer is full:
//
//	stream := secevent.NewAsync(
//		secevent.NewRedisWriter(rdb, secevent.RedisOptions{MaxLen: 100_000}),
//		secevent.AsyncOptions{BufferSize: 4096},
//	)
//	defer stream.Close(ctx)
//
//	sink := secevent.Safe(secevent.Multi(
//		secevent.NewLogWriter(log),
//		secevent.NewMetricsSink(prometheus.DefaultRegisterer),
//		stream,
//	), log)
package secevent
