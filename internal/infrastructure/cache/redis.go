package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
	"github.com/nashiko-dev/gomuse/internal/infrastructure/metrics"
)

const (
	// redisKeyPrefix namespaces response-cache keys in a shared Redis.
	redisKeyPrefix = "resp:"

	// redisScanCount is the per-iteration batch size for prefix invalidation.
	redisScanCount = 100
)

// Redis implements ResponseCache on a Redis backend, for running the daemon
// against a shared cache instead of per-process memory. Expiration is
// delegated to Redis key TTLs; prefix invalidation walks matching keys with
// SCAN.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed response cache.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get retrieves the payload for key. Returns a miss for absent or expired keys.
func (c *Redis) Get(ctx context.Context, key string) (model.Value, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeRedis).Inc()
			return model.Value{}, false, nil
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return model.Value{}, false, fmt.Errorf("redis get: %w", err)
	}

	payload, err := model.ParseValue(data)
	if err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return model.Value{}, false, fmt.Errorf("deserialize payload: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeRedis).Inc()
	return payload, true, nil
}

// Set stores the payload for key with the given TTL.
func (c *Redis) Set(ctx context.Context, key string, payload model.Value, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serialize payload: %w", err)
	}

	if err := c.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
	return nil
}

// Invalidate removes every entry whose key starts with prefix. SCAN walks the
// whole cache namespace and the prefix is compared literally in Go: MATCH
// treats its argument as a glob pattern, so interpolating a caller-supplied
// prefix there would give metacharacters like "*" and "?" pattern semantics.
func (c *Redis) Invalidate(ctx context.Context, prefix string) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, redisKeyPrefix+"*", redisScanCount).Result()
		if err != nil {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpInvalidate, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
			return fmt.Errorf("redis scan: %w", err)
		}

		matched := keys[:0]
		for _, k := range keys {
			if strings.HasPrefix(k, redisKeyPrefix+prefix) {
				matched = append(matched, k)
			}
		}
		if len(matched) > 0 {
			if err := c.client.Del(ctx, matched...).Err(); err != nil {
				metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpInvalidate, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
				return fmt.Errorf("redis del: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpInvalidate, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
	return nil
}

// InvalidateAll removes every response-cache entry. Only keys under this
// cache's namespace are touched; anything else in the Redis is left alone.
func (c *Redis) InvalidateAll(ctx context.Context) error {
	return c.Invalidate(ctx, "")
}
