// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aurafinsurance/insurance-backend/internal/config"
)

// Redis backs the token blacklist, wizard drafts and rate limit buckets.
type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = 30 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute

	r := &Redis{Client: redis.NewClient(opts)}
	if err := waitReady(ctx, "redis", r.ping); err != nil {
		//nolint:errcheck // the client never connected
		_ = r.Client.Close()
		return nil, err
	}

	return r, nil
}

func (r *Redis) ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Ping is the readiness check.
func (r *Redis) Ping(ctx context.Context) error {
	if err := pingWithTimeout(ctx, r.ping); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}
