package redis

import "time"

// Config describes the optional Redis stream that receives security events.
// An empty URL disables the stream.
type Config struct {
	URL            string        `env:"REDIS_URL"`                                     // redis://:password@localhost:6379/0
	Stream         string        `env:"REDIS_EVENT_STREAM" envDefault:"inputguard:security-events"`
	StreamMaxLen   int64         `env:"REDIS_EVENT_STREAM_MAXLEN" envDefault:"100000"` // approximate trim, 0 keeps everything
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
