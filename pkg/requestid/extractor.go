package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/inputguard/pkg/logger"
)

// LoggerExtractor adds correlation_id to log records whose context carries one.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.CorrelationID(id), true
		}
		return slog.Attr{}, false
	}
}
