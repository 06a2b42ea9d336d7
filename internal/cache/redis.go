// Package cache holds the StatsCache implementations used by the history
// service: a Redis-backed cache and a no-op stand-in for when Redis is not
// configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pkordes/habit-trail/internal/config"
	"github.com/pkordes/habit-trail/internal/domain"
)

// NewClient connects to Redis and pings it, closing the client if the ping fails.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache.NewClient: ping: %w", err)
	}
	logger.Info("connected to redis", "addr", cfg.Addr)
	return rdb, nil
}

// StatsCache stores domain.Stats as JSON under generation-scoped keys.
// Invalidate bumps the generation, orphaning every earlier entry until its
// TTL expires, so no key scan is ever needed.
type StatsCache struct {
	client    *goredis.Client
	namespace string
	ttl       time.Duration
}

// NewStatsCache returns a StatsCache whose keys all start with namespace.
func NewStatsCache(client *goredis.Client, namespace string, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, namespace: namespace, ttl: ttl}
}

// Get reads the current generation once and looks key up in it.
// A miss is (zero, gen, false, nil).
func (c *StatsCache) Get(ctx context.Context, key string) (domain.Stats, int64, bool, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return domain.Stats{}, 0, false, fmt.Errorf("cache.StatsCache.Get: generation: %w", err)
	}

	data, err := c.client.Get(ctx, c.key(gen, key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.Stats{}, gen, false, nil
		}
		return domain.Stats{}, 0, false, fmt.Errorf("cache.StatsCache.Get: %w", err)
	}

	var stats domain.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return domain.Stats{}, 0, false, fmt.Errorf("cache.StatsCache.Get: decode: %w", err)
	}
	return stats, gen, true, nil
}

// Set stores stats under key in generation gen for the configured TTL.
func (c *StatsCache) Set(ctx context.Context, gen int64, key string, stats domain.Stats) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("cache.StatsCache.Set: encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(gen, key), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache.StatsCache.Set: %w", err)
	}
	return nil
}

// Invalidate makes every existing entry unreachable.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("cache.StatsCache.Invalidate: %w", err)
	}
	return nil
}

func (c *StatsCache) generationKey() string {
	return c.namespace + ":generation"
}

func (c *StatsCache) key(gen int64, key string) string {
	return fmt.Sprintf("%s:g%d:%s", c.namespace, gen, key)
}
