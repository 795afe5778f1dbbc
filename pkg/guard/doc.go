// Package guard is the per-request validation pipeline that runs before any
// schema is applied.
//
// Check executes the steps in a fixed order and stops at the first failure:
//
//  1. size: declared or measured body length above Config.MaxBodySize
//  2. content_type: media type of a non-empty body not in the allow list
//  3. null_byte: NUL in any header or in the body
//  4. parse: malformed JSON for application/json and +json types
//  5. scripts, prompt_injection: signature scans over the body, or over every
//     decoded string when the body is JSON
//
// Script hits block by default; prompt injection hits are only recorded
// unless Config.Strict is set or the mode is ModeEnforce. Every hit is sent
// to the configured secevent.Sink.
//
// Middleware wraps Check for net/http. Handlers then call Bind with a
// schema, which collects every field error instead of stopping at the first:
//
//	g, err := guard.New(cfg, guard.WithSink(sink), guard.WithLogger(log))
//	if err != nil { ... }
//	r.Use(g.Middleware)
//	r.Post("/v1/agent/prompt", func(w http.ResponseWriter, r *http.Request) {
//		inst, err := g.Bind(r, promptSchema)
//		if err != nil {
//			_ = guard.WriteError(w, err)
//			return
//		}
//		...
//	})
//
// WriteError renders every failure as
//
//	{"code":"VALIDATION_ERROR","field_errors":[{"field":"prompt","code":"field_too_long","message":"value is too long"}]}
//
// with status 413, 415, 400 or 422 depending on the code.
package guard
