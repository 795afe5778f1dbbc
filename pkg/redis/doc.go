// Package redis connects the optional Redis stream used to ship security
// events off-host.
//
// Config is populated from the environment with github.com/caarlos0/env.
// Leaving REDIS_URL empty disables the stream; callers check Config.Enabled
// before calling Connect.
//
//	var cfg redis.Config
//	if err := env.Parse(&cfg); err != nil { ... }
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		if err != nil { ... }
//		sink := secevent.NewAsync(redis.EventWriter(client, cfg), secevent.AsyncOptions{})
//	}
//
// Healthcheck adapts a client to a readiness probe.
package redis
