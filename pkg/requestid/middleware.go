package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	// Header is read first and always set on the response.
	Header = "X-Request-ID"
	// CorrelationHeader is accepted from clients that use it instead of Header.
	CorrelationHeader = "X-Correlation-ID"

	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var validIDRegex = regexp.MustCompile(idPattern)

// Middleware attaches a correlation id to every request. A well-formed id
// from Header or CorrelationHeader is reused; anything else is replaced by a
// new UUID so attacker-chosen text never reaches the logs.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := Resolve(r.Header)
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// Resolve picks the correlation id for a request with headers h, generating
// one when the client supplied none or an invalid one.
func Resolve(h http.Header) string {
	for _, name := range []string{Header, CorrelationHeader} {
		if id := h.Get(name); isValidRequestID(id) {
			return id
		}
	}
	return uuid.NewString()
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
