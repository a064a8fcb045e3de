package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	CatalogTTL   = 10 * time.Minute
	DashboardTTL = time.Minute
)

// Cache is a thin read-through JSON cache over Redis. A nil *Cache is valid
// and disables caching.
type Cache struct {
	rdb *redis.Client
}

// New connects to Redis; an empty addr disables caching entirely.
func New(addr, password string) *Cache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &Cache{rdb: rdb}
}

// Ping verifies connectivity at startup.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// GetJSON loads key into v. Returns false on miss, unmarshal failure, or
// when caching is disabled.
func (c *Cache) GetJSON(ctx context.Context, key string, v any) bool {
	if c == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(data), v) == nil
}

// SetJSON stores v under key with a TTL. Write failures are swallowed; the
// database remains the source of truth.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, data, ttl)
}

// Invalidate drops keys after admin-side writes.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}
