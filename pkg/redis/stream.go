package redis

import (
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/inputguard/pkg/secevent"
)

// EventWriter returns a secevent writer that appends to cfg.Stream.
func EventWriter(client redis.UniversalClient, cfg Config) *secevent.RedisWriter {
	return secevent.NewRedisWriter(client, secevent.RedisOptions{
		Stream: cfg.Stream,
		MaxLen: cfg.StreamMaxLen,
	})
}
