package guard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrymomot/inputguard/pkg/validator"
)

type requestKey struct{}

// WithRequest stores a checked request in ctx.
func WithRequest(ctx context.Context, req *Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFrom returns the request stored by Middleware.
func RequestFrom(ctx context.Context) (*Request, bool) {
	req, ok := ctx.Value(requestKey{}).(*Request)
	return req, ok && req != nil
}

// Middleware runs Check on every request. Rejected requests get the JSON
// error envelope; accepted ones continue with the body restored and the
// *Request available through RequestFrom.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, length, rerr := g.readBody(w, r)
		if rerr != nil {
			_ = WriteError(w, g.reject(r.Context(), rerr))
			return
		}

		req, err := g.Check(r.Context(), r.Header, length, body)
		if err != nil {
			_ = WriteError(w, err)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r.WithContext(WithRequest(r.Context(), req)))
	})
}

// readBody reads at most MaxBodySize bytes. When the body is larger it stops
// early and reports a length past the limit so Check fails the size step.
func (g *Guard) readBody(w http.ResponseWriter, r *http.Request) ([]byte, int64, *Error) {
	limit := g.cfg.MaxBodySize
	if r.ContentLength > limit {
		return nil, r.ContentLength, nil
	}
	if r.Body == nil || r.Body == http.NoBody {
		return nil, r.ContentLength, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, limit + 1, nil
		}
		return nil, 0, newError(validator.CodeMalformedBody, FieldBody)
	}
	return body, r.ContentLength, nil
}
