package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/inputguard/pkg/field"
	"github.com/dmitrymomot/inputguard/pkg/guard"
	"github.com/dmitrymomot/inputguard/pkg/httpserver"
	"github.com/dmitrymomot/inputguard/pkg/requestid"
	"github.com/dmitrymomot/inputguard/pkg/schema"
)

type deps struct {
	guard    *guard.Guard
	log      *slog.Logger
	gatherer prometheus.Gatherer
	checks   map[string]httpserver.Check
}

func newRouter(d deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)

	checks := map[string]httpserver.Check{
		"patterns": func(context.Context) error {
			if d.guard.Registry().Load().Len() == 0 {
				return errNoSignatures
			}
			return nil
		},
	}
	for name, c := range d.checks {
		checks[name] = c
	}

	r.Get("/healthz", httpserver.HealthHandler(d.log, checks))
	r.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))

	prompt := schema.SecureAgentPrompt(d.guard.ValidatorOptions()...)
	filename := field.Filename(0)

	r.Route("/v1", func(r chi.Router) {
		r.Use(d.guard.Middleware)
		r.Post("/agent/prompt", agentPromptHandler(d.guard, prompt))
		r.Post("/files/{name}", fileHandler(d.guard, filename))
	})

	return r
}

func agentPromptHandler(g *guard.Guard, s *schema.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inst, err := g.Bind(r, s)
		if err != nil {
			_ = guard.WriteError(w, err)
			return
		}

		p := schema.AgentPromptFrom(inst)
		req, _ := guard.RequestFrom(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{
			"prompt":             p.Prompt,
			"system_context":     p.SystemContext,
			"has_system_context": p.HasSystemContext,
			"warnings":           len(req.Warnings),
			"pattern_version":    g.Registry().Load().Version(),
		})
	}
}

func fileHandler(g *guard.Guard, def field.Definition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := url.PathUnescape(chi.URLParam(r, "name"))
		if err != nil {
			raw = chi.URLParam(r, "name")
		}

		name, err := g.BindValue(r.Context(), "name", def, raw)
		if err != nil {
			_ = guard.WriteError(w, err)
			return
		}

		n, _ := io.Copy(io.Discard, r.Body)
		writeJSON(w, http.StatusCreated, map[string]any{
			"name": name.String(),
			"size": n,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
