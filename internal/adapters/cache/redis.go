package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"itinerary-scheduler-service/internal/ports"
)

// Namespace for transit entries so Clear cannot touch unrelated keys.
const redisKeyPrefix = "itinerary:transit:"

// RedisTransitCache shares transit results across processes through Redis.
// Entries are stored as JSON with a server-side TTL.
type RedisTransitCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTransitCache(client *redis.Client, ttl time.Duration) *RedisTransitCache {
	return &RedisTransitCache{client: client, ttl: ttl}
}

func (c *RedisTransitCache) Get(ctx context.Context, key string) (*ports.TransitCacheEntry, error) {
	val, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis transit cache: get %q: %w", key, err)
	}

	var entry ports.TransitCacheEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, fmt.Errorf("redis transit cache: decode %q: %w", key, err)
	}
	return &entry, nil
}

func (c *RedisTransitCache) Put(ctx context.Context, key string, entry ports.TransitCacheEntry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("redis transit cache: encode %q: %w", key, err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis transit cache: set %q: %w", key, err)
	}
	return nil
}

func (c *RedisTransitCache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("redis transit cache: scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis transit cache: del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
