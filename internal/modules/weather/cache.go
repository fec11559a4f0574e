// README: Caches for successful weather lookups; Redis when shared, go-cache in-process otherwise.
package weather

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "weather:"

// Cache stores successful lookups keyed by city. Misses and read errors look the same.
type Cache interface {
	Get(ctx context.Context, city string) (map[string]any, bool)
	Set(ctx context.Context, city string, data map[string]any) error
}

type RedisCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisCache(redis *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{redis: redis, ttl: ttl}
}

// Get reports a hit only for a readable entry; Redis errors count as a miss.
func (c *RedisCache) Get(ctx context.Context, city string) (map[string]any, bool) {
	val, err := c.redis.Get(ctx, cacheKey(city)).Bytes()
	if err != nil {
		return nil, false
	}
	var data map[string]any
	if err := json.Unmarshal(val, &data); err != nil || data == nil {
		return nil, false
	}
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, city string, data map[string]any) error {
	val, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, cacheKey(city), val, c.ttl).Err()
}

type LocalCache struct {
	items *gocache.Cache
}

func NewLocalCache(ttl time.Duration) *LocalCache {
	return &LocalCache{items: gocache.New(ttl, 2*ttl)}
}

func (c *LocalCache) Get(_ context.Context, city string) (map[string]any, bool) {
	v, ok := c.items.Get(cacheKey(city))
	if !ok {
		return nil, false
	}
	data, ok := v.(map[string]any)
	return data, ok
}

func (c *LocalCache) Set(_ context.Context, city string, data map[string]any) error {
	c.items.SetDefault(cacheKey(city), data)
	return nil
}

func cacheKey(city string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(city))
}
