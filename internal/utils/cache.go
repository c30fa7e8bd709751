package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"
	"strconv"
	"time" // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache is a JSON read-through cache on Redis. A nil *Cache or a Cache
// without a client is a no-op, so the service runs without Redis.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache returns a cache storing entries for ttl
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

// DashboardGenKey holds the counter every write to a user's transactions bumps
func DashboardGenKey(userID uint) string {
	return "dashboard:user:" + strconv.FormatUint(uint64(userID), 10) + ":gen"
}

// DashboardKey is the cache key of a user's dashboard summary computed at generation gen
func DashboardKey(userID uint, gen int64) string {
	return "dashboard:user:" + strconv.FormatUint(uint64(userID), 10) + ":" + strconv.FormatInt(gen, 10)
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err // Corrupt entry
	}
	return true, nil
}

// Set stores a value in Redis with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if !c.enabled() {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err() // Set value in Redis with TTL
}

// Generation reads the counter at key. A missing counter is generation 0.
func (c *Cache) Generation(ctx context.Context, key string) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	gen, err := c.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Bump advances the counter at key, orphaning entries stored under the old generation
func (c *Cache) Bump(ctx context.Context, key string) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Incr(ctx, key).Err()
}
