// Package cache provides the Redis client and the access token denylist built on it.
package cache

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"modelhub/internal/middleware"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// InitRedis connects to the Redis server at addr, which may be a redis:// URL
// or a host:port pair. An empty or unreachable address leaves the client nil;
// the application then runs without token revocation.
func InitRedis(addr string) {
	client = nil
	if strings.TrimSpace(addr) == "" {
		log.Println("REDIS_URL not set, logout will not revoke tokens")
		return
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("Redis connection warning: invalid REDIS_URL %q: %v (continuing without token denylist)", addr, err)
			return
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	c := redis.NewClient(opts)
	c.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without token denylist)", err)
		_ = c.Close()
		return
	}
	log.Println("Redis connected successfully")
	client = c
}

// GetClient returns the current Redis client instance, or nil.
func GetClient() *redis.Client {
	return client
}
