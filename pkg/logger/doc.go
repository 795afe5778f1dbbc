// Package logger builds slog loggers with functional options and injects
// request-scoped values from context.Context into every record.
//
// New returns a *slog.Logger whose handler is a text or JSON handler wrapped
// in LogHandlerDecorator. The decorator runs registered ContextExtractor
// callbacks on each record, which is how the correlation id from
// pkg/requestid ends up on every security log line.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithProduction("guardd"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "input rejected",
//	    logger.Family(ev.Family),
//	    logger.PatternID(ev.PatternID),
//	    logger.FieldName(ev.Field),
//	)
//
// # Attributes
//
// attr.go holds constructors for the keys used across the module (family,
// severity, action, pattern_id, field, sample_hash, code). Constructors for
// optional values return an empty Attr, which slog drops, so callers need no
// nil or empty checks. Raw input must never be logged; SampleHash carries a
// hash of it and belongs on debug records only.
package logger
