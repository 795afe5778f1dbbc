package main

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/inputguard/pkg/guard"
	"github.com/dmitrymomot/inputguard/pkg/httpserver"
	"github.com/dmitrymomot/inputguard/pkg/redis"
)

var errConfig = errors.New("failed to load configuration")

type config struct {
	Service   string `env:"SERVICE_NAME" envDefault:"guardd"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	EventBufferSize int `env:"EVENT_BUFFER_SIZE" envDefault:"4096"`
	EventBatchSize  int `env:"EVENT_BATCH_SIZE" envDefault:"128"`

	HTTP  httpserver.Config
	Guard guard.Config
	Redis redis.Config
}

// loadConfig reads an optional .env and then the process environment.
func loadConfig() (config, error) {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, errors.Join(errConfig, err)
	}
	if err := cfg.Guard.Validate(); err != nil {
		return config{}, errors.Join(errConfig, err)
	}
	return cfg, nil
}
