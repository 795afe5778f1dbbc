// Command guardd is a reference service that puts the input guard in front of
// an agent prompt endpoint and a file upload endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/inputguard/pkg/guard"
	"github.com/dmitrymomot/inputguard/pkg/httpserver"
	"github.com/dmitrymomot/inputguard/pkg/logger"
	"github.com/dmitrymomot/inputguard/pkg/redis"
	"github.com/dmitrymomot/inputguard/pkg/requestid"
	"github.com/dmitrymomot/inputguard/pkg/secevent"
)

var errNoSignatures = errors.New("pattern table has no signatures")

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(
		logger.WithFormat(format),
		logger.WithLevel(level),
		logger.WithService(cfg.Service),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sinks := []secevent.Sink{
		secevent.NewLogWriter(log),
		secevent.NewMetricsSink(reg),
	}
	checks := map[string]httpserver.Check{}
	var hooks []httpserver.Option

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		stream := secevent.NewAsync(redis.EventWriter(client, cfg.Redis), secevent.AsyncOptions{
			BufferSize: cfg.EventBufferSize,
			BatchSize:  cfg.EventBatchSize,
			OnError: func(err error) {
				log.Warn("security event stream write failed", logger.Error(err))
			},
		})
		secevent.RegisterDropped(reg, stream)
		sinks = append(sinks, stream)
		checks["redis"] = redis.Healthcheck(client)
		hooks = append(hooks,
			httpserver.WithShutdownHook(stream.Close),
			httpserver.WithShutdownHook(func(context.Context) error { return client.Close() }),
		)
		log.Info("security events streaming to redis", slog.String("stream", cfg.Redis.Stream))
	}

	g, err := guard.New(cfg.Guard,
		guard.WithSink(secevent.Multi(sinks...)),
		guard.WithLogger(log),
	)
	if err != nil {
		return err
	}
	log.Info("pattern table loaded",
		slog.String("version", g.Registry().Load().Version()),
		slog.Int("signatures", g.Registry().Load().Len()),
	)

	go reloadOnHangup(ctx, g, log)

	srv := httpserver.New(cfg.HTTP, append([]httpserver.Option{httpserver.WithLogger(log)}, hooks...)...)
	return srv.Run(ctx, newRouter(deps{
		guard:    g,
		log:      log,
		gatherer: reg,
		checks:   checks,
	}))
}

// reloadOnHangup swaps in a freshly loaded pattern table on every SIGHUP.
// A table that fails to load leaves the current one in place.
func reloadOnHangup(ctx context.Context, g *guard.Guard, log *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			t, err := g.ReloadPatterns()
			if err != nil {
				log.Error("pattern table reload failed", logger.Error(err))
				continue
			}
			log.Info("pattern table reloaded", slog.String("version", t.Version()), slog.Int("signatures", t.Len()))
		}
	}
}
