// Package cache provides a small JSON cache over Redis.
// A nil *Cache is valid and behaves as a cache that always misses.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/metrics"
)

type Cache struct {
	client *redis.Client
	log    *logger.Logger
}

// Connect pings Redis at addr. It returns a nil cache when Redis is not configured or unreachable.
func Connect(ctx context.Context, addr, password string, log *logger.Logger) *Cache {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis connection failed, continuing without cache", "addr", addr, "error", err)
		client.Close()
		return nil
	}

	log.Info("Redis connected", "addr", addr)
	return New(client, log)
}

func New(client *redis.Client, log *logger.Logger) *Cache {
	return &Cache{client: client, log: log}
}

// Client exposes the underlying client, or nil.
func (c *Cache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// GetJSON decodes the value under key into dst and reports whether it was found.
// Redis errors count as a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache get failed", "key", key, "error", err)
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		c.log.Warn("cache entry is corrupt", "key", key, "error", err)
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
