// Package httpserver runs the service HTTP listener with hardened defaults
// and a context-driven graceful shutdown.
//
// Run blocks until its context is cancelled. The listener is then shut down
// within Config.ShutdownTimeout and the shutdown hooks run with whatever is
// left of that deadline, which is where buffered sinks get flushed:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithShutdownHook(events.Close),
//	)
//	if err := srv.Run(ctx, router); err != nil { ... }
//
// HealthHandler serves a JSON liveness/readiness probe over named checks.
package httpserver
