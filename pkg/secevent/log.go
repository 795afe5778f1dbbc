package secevent

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/inputguard/pkg/logger"
)

// LogWriter writes events as structured log records: warn level for
// rejections, info for everything else. The sample hash is only attached
// when debug logging is enabled.
type LogWriter struct {
	log *slog.Logger
}

// NewLogWriter logs through l, or slog.Default() when nil.
func NewLogWriter(l *slog.Logger) *LogWriter {
	if l == nil {
		l = slog.Default()
	}
	return &LogWriter{log: l.With(logger.Component("secevent"))}
}

func (w *LogWriter) Write(ctx context.Context, events []Event) error {
	for _, e := range events {
		w.write(ctx, e)
	}
	return nil
}

// Emit logs e synchronously. Logging is cheap enough to do inline.
func (w *LogWriter) Emit(e Event) {
	w.write(context.Background(), e)
}

func (w *LogWriter) write(ctx context.Context, e Event) {
	level := slog.LevelInfo
	if e.Action == ActionReject {
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("event_id", e.ID.String()),
		logger.CorrelationID(e.CorrelationID),
		logger.Family(e.Family),
		logger.Severity(e.Severity),
		logger.Action(e.Action),
		logger.PatternID(e.PatternID),
		logger.FieldName(e.Field),
	}
	if w.log.Enabled(ctx, slog.LevelDebug) {
		attrs = append(attrs, logger.SampleHash(e.SampleHash))
	}

	w.log.LogAttrs(ctx, level, "security event", attrs...)
}
