package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/httpserver"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln
}

func TestServe_ShutdownOnCancel(t *testing.T) {
	t.Parallel()

	var hookCalls atomic.Int32
	srv := httpserver.New(httpserver.Config{ShutdownTimeout: time.Second},
		httpserver.WithShutdownHook(func(context.Context) error {
			hookCalls.Add(1)
			return nil
		}),
	)

	ln := listen(t)
	addr := ln.Addr().String()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
	}()

	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Get("http://" + addr)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "server did not stop")
	}
	assert.Equal(t, int32(1), hookCalls.Load())
}

func TestServe_HookErrors(t *testing.T) {
	t.Parallel()

	hookErr := errors.New("flush failed")
	srv := httpserver.New(httpserver.Config{}, httpserver.WithShutdownHook(func(context.Context) error { return hookErr }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := srv.Serve(ctx, listen(t), nil)
	assert.ErrorIs(t, err, httpserver.ErrShutdown)
	assert.ErrorIs(t, err, hookErr)
}

func TestRun_StartError(t *testing.T) {
	t.Parallel()

	ln := listen(t)
	defer ln.Close()

	srv := httpserver.New(httpserver.Config{Addr: ln.Addr().String()})
	err := srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestServe_AlreadyRunning(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ln := listen(t)
	addr := ln.Addr().String()
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln, nil) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	err := srv.Serve(ctx, listen(t), nil)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)

	cancel()
	require.NoError(t, <-done)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	cfg := httpserver.New(httpserver.Config{Addr: ":9999"}).Config()
	want := httpserver.DefaultConfig()
	want.Addr = ":9999"
	assert.Equal(t, want, cfg)
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		checks map[string]httpserver.Check
		status int
		body   map[string]any
	}{
		{
			name:   "no checks",
			status: http.StatusOK,
			body:   map[string]any{"status": "ok"},
		},
		{
			name: "all pass",
			checks: map[string]httpserver.Check{
				"redis": func(context.Context) error { return nil },
			},
			status: http.StatusOK,
			body:   map[string]any{"status": "ok"},
		},
		{
			name: "one fails",
			checks: map[string]httpserver.Check{
				"redis":    func(context.Context) error { return errors.New("down") },
				"patterns": func(context.Context) error { return nil },
			},
			status: http.StatusServiceUnavailable,
			body:   map[string]any{"status": "unavailable", "failed": []any{"redis"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			httpserver.HealthHandler(nil, tt.checks).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.status, rec.Code)
			var got map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.body, got)
		})
	}
}
