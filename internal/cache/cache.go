// Package cache is a read-through Redis cache for pub reads.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pintwise/pintwise/internal/metrics"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache stores JSON encoded values in Redis. Concurrent misses on a key share one load.
// A nil *Cache disables caching and always loads.
type Cache struct {
	client  rueidis.Client
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// New creates a cache over a Redis client.
func New(client rueidis.Client, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) *Cache {
	return &Cache{
		client:  client,
		ttl:     ttl,
		metrics: m,
		logger:  logger.Named("cache"),
	}
}

// Fetch returns the cached value for key, loading and storing it on a miss.
// Redis failures fall back to the loader so the cache never blocks a read.
func Fetch[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	data, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).AsBytes()
	switch {
	case err == nil:
		var value T
		if err := sonic.Unmarshal(data, &value); err == nil {
			c.metrics.CacheHit()
			return value, nil
		}
		c.logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
	case !rueidis.IsRedisNil(err):
		c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	c.metrics.CacheMiss()

	result, err, _ := c.group.Do(key, func() (any, error) {
		value, err := load(ctx)
		if err != nil {
			return value, err
		}

		if encoded, err := sonic.Marshal(value); err == nil {
			cmd := c.client.B().Set().Key(key).Value(rueidis.BinaryString(encoded)).Ex(c.ttl).Build()
			if err := c.client.Do(ctx, cmd).Error(); err != nil {
				c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
			}
		}

		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result.(T), nil
}

// Delete removes keys from the cache.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}

	if err := c.client.Do(ctx, c.client.B().Del().Key(keys...).Build()).Error(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}
