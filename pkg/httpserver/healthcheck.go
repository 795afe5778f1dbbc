package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"maps"
	"slices"

	"github.com/dmitrymomot/inputguard/pkg/logger"
)

// Check probes one dependency.
type Check func(context.Context) error

// HealthHandler reports {"status":"ok"} when every check passes and 503 with
// the failing check names otherwise. Check errors are logged, not returned.
func HealthHandler(log *slog.Logger, checks map[string]Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	names := slices.Sorted(maps.Keys(checks))

	return func(w http.ResponseWriter, r *http.Request) {
		var failed []string
		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				log.WarnContext(r.Context(), "health check failed", slog.String("check", name), logger.Error(err))
				failed = append(failed, name)
			}
		}

		status := http.StatusOK
		body := map[string]any{"status": "ok"}
		if len(failed) > 0 {
			status = http.StatusServiceUnavailable
			body = map[string]any{"status": "unavailable", "failed": failed}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
