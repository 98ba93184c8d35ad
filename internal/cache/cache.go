package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache layers an in-process LRU (L1) over Redis (L2). A Redis miss or
// error falls through to the caller; the store stays authoritative.
type Cache struct {
	l1    *LRUCache
	l2    *redis.Client
	l2TTL time.Duration
}

func NewMultiTierCache(l1Capacity int, redisClient *redis.Client, l2TTL time.Duration) *Cache {
	return &Cache{
		l1:    NewLRUCache(l1Capacity),
		l2:    redisClient,
		l2TTL: l2TTL,
	}
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if val, found := c.l1.Get(key); found {
		return json.Unmarshal([]byte(val), dest) == nil
	}

	val, err := c.l2.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	if json.Unmarshal([]byte(val), dest) != nil {
		return false
	}
	c.l1.Set(key, val)
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.l1.Set(key, string(data))
	return c.l2.Set(ctx, key, string(data), c.l2TTL).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.l1.Delete(key)
	return c.l2.Del(ctx, key).Err()
}
