package guard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/inputguard/pkg/field"
	"github.com/dmitrymomot/inputguard/pkg/patterns"
	"github.com/dmitrymomot/inputguard/pkg/requestid"
	"github.com/dmitrymomot/inputguard/pkg/schema"
	"github.com/dmitrymomot/inputguard/pkg/secevent"
	"github.com/dmitrymomot/inputguard/pkg/validator"
)

// Bind validates the JSON object checked by Middleware against s. Every
// field error is collected into a *ValidationError. A body that is not a
// JSON object yields a malformed_body *Error.
func (g *Guard) Bind(r *http.Request, s *schema.Schema) (*schema.Instance, error) {
	ctx := r.Context()
	req, ok := RequestFrom(ctx)
	if !ok {
		return nil, ErrNoRequest
	}

	g.observe(StepSchema)
	payload, ok := req.Object()
	if !ok {
		return nil, g.reject(ctx, newError(validator.CodeMalformedBody, FieldBody))
	}

	out := s.Validate(payload)
	g.report(req.CorrelationID, out.Warnings, out.Errors, func(name string) string {
		v, _ := payload[name].(string)
		return v
	})

	if !out.Valid() {
		g.log.InfoContext(ctx, "payload failed schema validation",
			slog.String("schema", s.Name()),
			slog.Any("codes", out.Errors.Codes()),
		)
		return nil, &ValidationError{Errors: out.Errors}
	}
	return out.Instance, nil
}

// BindValue validates a single value taken from outside the body, such as a
// path segment or query parameter, and reports its findings like Bind.
func (g *Guard) BindValue(ctx context.Context, name string, def field.Definition, raw string) (field.Value, error) {
	g.observe(StepSchema)
	v, findings, err := def.Construct(name, raw)
	errs := validator.ExtractFieldErrors(err)
	g.report(requestid.FromContext(ctx), findings, errs, func(string) string { return raw })

	if err != nil {
		g.log.InfoContext(ctx, "value failed validation",
			slog.String("type", def.TypeName()),
			slog.Any("codes", errs.Codes()),
		)
		return nil, &ValidationError{Errors: errs}
	}
	return v, nil
}

// report emits a sanitize event per sanitize finding, a warn event per other
// finding and a reject event per injection error. sample returns the raw
// value of a field for hashing.
func (g *Guard) report(correlationID string, findings []field.Finding, errs validator.FieldErrors, sample func(string) string) {
	opts := func(name string) []secevent.EventOption {
		return []secevent.EventOption{
			secevent.WithCorrelationID(correlationID),
			secevent.WithField(name),
			secevent.WithSample(sample(name)),
		}
	}

	for _, f := range findings {
		action := secevent.ActionWarn
		if f.Sanitized {
			action = secevent.ActionSanitize
		}
		g.emit(secevent.FromMatch(f.Match, action, opts(f.Field)...))
	}
	for _, fe := range errs {
		if fe.Code != validator.CodeInjectionDetected {
			continue
		}
		m := patterns.Match{ID: fe.PatternID, Family: fe.Family, Severity: patterns.SeverityReject}
		g.emit(secevent.FromMatch(m, secevent.ActionReject, opts(fe.Field)...))
	}
}
