// Package bootstrap wires the process-level runtime: database, Redis,
// reference data and tracing.
package bootstrap

import (
	"context"
	"fmt"

	"modelhub/internal/cache"
	"modelhub/internal/config"
	"modelhub/internal/database"
	"modelhub/internal/observability"
	"modelhub/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedCategories bool
}

// InitRuntime connects to DB and Redis and prepares reference data.
// The returned Redis client is nil when Redis is unset or unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	if err := PrepareData(db, opts); err != nil {
		return nil, nil, err
	}
	return db, cache.GetClient(), nil
}

// PrepareData runs the start-up data steps selected by opts against an
// already migrated database.
func PrepareData(db *gorm.DB, opts Options) error {
	if opts.SeedCategories {
		if err := seed.Categories(db); err != nil {
			return fmt.Errorf("failed to seed reference categories: %w", err)
		}
	}
	return nil
}

// InitTracing starts the tracer provider described by cfg and returns its
// shutdown function.
func InitTracing(cfg *config.Config, version string) (func(context.Context) error, error) {
	return observability.InitTracing(observability.TracingConfig{
		ServiceName:    observability.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
}
