package guard

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/dmitrymomot/inputguard/pkg/logger"
	"github.com/dmitrymomot/inputguard/pkg/patterns"
	"github.com/dmitrymomot/inputguard/pkg/requestid"
	"github.com/dmitrymomot/inputguard/pkg/secevent"
	"github.com/dmitrymomot/inputguard/pkg/validator"
)

// Field names used in errors raised before the schema layer.
const (
	FieldBody    = "body"
	FieldHeaders = "headers"
)

// Guard runs the coarse per-request checks that precede schema validation.
// It is safe for concurrent use.
type Guard struct {
	cfg      Config
	allowed  map[string]struct{}
	sink     secevent.Sink
	log      *slog.Logger
	registry *patterns.Registry
	observer func(Step)

	scripts *validator.PatternValidator
	prompt  *validator.PatternValidator
}

// Option configures a Guard.
type Option func(*Guard)

// WithSink sends security events to s. Without it events are discarded. A
// panic inside s is recovered and logged.
func WithSink(s secevent.Sink) Option {
	return func(g *Guard) {
		if s != nil {
			g.sink = s
		}
	}
}

// WithLogger sets the logger for rejections.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.log = l
		}
	}
}

// WithRegistry scans against r. It takes precedence over Config.PatternsFile.
func WithRegistry(r *patterns.Registry) Option {
	return func(g *Guard) { g.registry = r }
}

// WithObserver calls fn at the start of every step that runs.
func WithObserver(fn func(Step)) Option {
	return func(g *Guard) { g.observer = fn }
}

// New validates cfg and builds a Guard. When cfg.PatternsFile is set and no
// registry is supplied, the file is loaded into a new registry.
func New(cfg Config, opts ...Option) (*Guard, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Guard{
		cfg:     cfg,
		allowed: make(map[string]struct{}, len(cfg.AllowedContentTypes)),
		sink:    secevent.Nop(),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	for _, ct := range cfg.AllowedContentTypes {
		g.allowed[strings.ToLower(strings.TrimSpace(ct))] = struct{}{}
	}

	if g.registry == nil {
		if cfg.PatternsFile != "" {
			t, err := patterns.LoadFile(cfg.PatternsFile)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
			}
			g.registry = patterns.NewRegistry(t)
		} else {
			g.registry = patterns.DefaultRegistry()
		}
	}

	g.scripts = validator.ScriptInjection(g.ValidatorOptions()...)
	g.prompt = validator.PromptInjection(g.ValidatorOptions()...)
	g.log = g.log.With(logger.Component("guard"))
	g.sink = secevent.Safe(g.sink, g.log)

	return g, nil
}

// Config returns the policy the guard was built with.
func (g *Guard) Config() Config { return g.cfg }

// Registry returns the pattern registry the guard scans against.
func (g *Guard) Registry() *patterns.Registry { return g.registry }

// ValidatorOptions returns the options the guard builds its own validators
// with, so schemas can scan against the same registry and strictness.
func (g *Guard) ValidatorOptions() []validator.Option {
	return []validator.Option{validator.WithRegistry(g.registry), validator.WithStrict(g.cfg.Strict)}
}

// ReloadPatterns reads Config.PatternsFile again and swaps the new table in.
// In-flight requests finish on the table they started with.
func (g *Guard) ReloadPatterns() (*patterns.Table, error) {
	if g.cfg.PatternsFile == "" {
		return g.registry.Load(), nil
	}
	t, err := patterns.LoadFile(g.cfg.PatternsFile)
	if err != nil {
		return nil, err
	}
	if _, err := g.registry.Swap(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Request is what the pipeline learned about an accepted request.
type Request struct {
	CorrelationID string
	// MediaType is the lower-cased content type without parameters.
	MediaType string
	Body      []byte
	// Payload is the decoded body for JSON media types, nil otherwise.
	Payload  any
	Warnings []patterns.Match
}

// JSON reports whether the body was decoded as JSON.
func (r *Request) JSON() bool { return r.Payload != nil }

// Object returns the payload when it is a JSON object.
func (r *Request) Object() (map[string]any, bool) {
	m, ok := r.Payload.(map[string]any)
	return m, ok
}

func (g *Guard) observe(s Step) {
	if g.observer != nil {
		g.observer(s)
	}
}

// Check runs the pipeline over one request. contentLength is the declared
// length, or a negative value when unknown. The first failing step ends the
// request with a non-nil *Error.
func (g *Guard) Check(ctx context.Context, headers http.Header, contentLength int64, body []byte) (*Request, *Error) {
	req := &Request{CorrelationID: requestid.FromContext(ctx), Body: body}

	g.observe(StepSize)
	if contentLength > g.cfg.MaxBodySize || int64(len(body)) > g.cfg.MaxBodySize {
		return nil, g.reject(ctx, newError(validator.CodeTooLarge, FieldBody))
	}

	g.observe(StepContentType)
	if len(body) > 0 {
		mt, err := g.mediaType(headers.Get("Content-Type"))
		if err != nil {
			return nil, g.reject(ctx, err)
		}
		req.MediaType = mt
	}

	g.observe(StepNullByte)
	if containsNUL(headers) {
		return nil, g.rejectNUL(ctx, req, FieldHeaders)
	}
	if bytes.IndexByte(body, 0) >= 0 {
		return nil, g.rejectNUL(ctx, req, FieldBody)
	}

	g.observe(StepParse)
	texts := []string{string(body)}
	if isJSON(req.MediaType) && len(body) > 0 {
		payload, err := decodeJSON(body)
		if err != nil {
			return nil, g.reject(ctx, newError(validator.CodeMalformedBody, FieldBody))
		}
		req.Payload = payload
		texts = collectStrings(payload, nil)
		for _, s := range texts {
			if strings.IndexByte(s, 0) >= 0 {
				return nil, g.rejectNUL(ctx, req, FieldBody)
			}
		}
	}

	if g.cfg.CheckScripts {
		g.observe(StepScripts)
		if err := g.scan(ctx, req, g.scripts, texts, g.cfg.enforceScripts()); err != nil {
			return nil, err
		}
	}

	if g.cfg.CheckPromptInjection {
		g.observe(StepPromptInjection)
		if err := g.scan(ctx, req, g.prompt, texts, g.cfg.enforcePrompt()); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func (g *Guard) mediaType(header string) (string, *Error) {
	if header == "" {
		return "", newError(validator.CodeUnsupportedContentType, FieldHeaders)
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return "", newError(validator.CodeUnsupportedContentType, FieldHeaders)
	}
	mt = strings.ToLower(mt)
	if _, ok := g.allowed[mt]; !ok {
		return "", newError(validator.CodeUnsupportedContentType, FieldHeaders)
	}
	return mt, nil
}

func isJSON(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func containsNUL(h http.Header) bool {
	for name, values := range h {
		if strings.IndexByte(name, 0) >= 0 {
			return true
		}
		for _, v := range values {
			if strings.IndexByte(v, 0) >= 0 {
				return true
			}
		}
	}
	return false
}

// scan runs v over each text. Non-blocking hits and, outside enforce mode,
// blocking hits become warnings on req.
func (g *Guard) scan(ctx context.Context, req *Request, v *validator.PatternValidator, texts []string, enforce bool) *Error {
	for _, text := range texts {
		verdict := v.Validate(text)
		for _, m := range verdict.Warnings {
			req.Warnings = append(req.Warnings, m)
			g.emit(secevent.FromMatch(m, secevent.ActionWarn, g.eventOpts(req, FieldBody, text)...))
		}
		if verdict.Safe {
			continue
		}

		m := patterns.Match{ID: verdict.PatternID, Family: verdict.Family, Severity: verdict.Severity}
		if !enforce {
			m.Severity = patterns.SeverityWarn
			req.Warnings = append(req.Warnings, m)
			g.emit(secevent.FromMatch(m, secevent.ActionWarn, g.eventOpts(req, FieldBody, text)...))
			g.log.DebugContext(ctx, "injection signature matched in warn mode",
				logger.Family(m.Family), logger.PatternID(m.ID))
			continue
		}

		g.emit(secevent.FromMatch(m, secevent.ActionReject, g.eventOpts(req, FieldBody, text)...))
		err := newError(validator.CodeInjectionDetected, FieldBody)
		err.Family = verdict.Family
		err.PatternID = verdict.PatternID
		return g.reject(ctx, err)
	}
	return nil
}

func (g *Guard) rejectNUL(ctx context.Context, req *Request, field string) *Error {
	g.emit(secevent.New(patterns.FamilyNullByte, patterns.SeverityReject, secevent.ActionReject,
		secevent.WithCorrelationID(req.CorrelationID), secevent.WithField(field)))
	err := newError(validator.CodeNullByteDetected, field)
	err.Family = patterns.FamilyNullByte
	return g.reject(ctx, err)
}

func (g *Guard) reject(ctx context.Context, err *Error) *Error {
	g.log.InfoContext(ctx, "request rejected",
		logger.Code(err.Code),
		logger.FieldName(err.Field),
		logger.PatternID(err.PatternID),
	)
	return err
}

func (g *Guard) eventOpts(req *Request, field, sample string) []secevent.EventOption {
	return []secevent.EventOption{
		secevent.WithCorrelationID(req.CorrelationID),
		secevent.WithField(field),
		secevent.WithSample(sample),
	}
}

func (g *Guard) emit(e secevent.Event) {
	g.sink.Emit(e)
}
