// Package requestid carries the opaque correlation id attached to security
// events and log records.
//
// Middleware reuses a client-supplied X-Request-ID (or X-Correlation-ID) when
// it is a short token of letters, digits, '-' and '_', and generates a UUIDv4
// otherwise. The id is stored in the request context and echoed in the
// X-Request-ID response header.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// The package never fails: invalid ids are silently replaced.
package requestid
