package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(rdb, time.Minute)
	ctx := context.Background()
	key := DashboardKey(7, 3)
	assert.Equal(t, "dashboard:user:7:3", key)

	var got payload
	found, err := cache.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, key, payload{Name: "food", Total: 150}))
	found, err = cache.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "food", Total: 150}, got)

	mr.FastForward(2 * time.Minute)
	found, err = cache.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheGeneration(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	ctx := context.Background()
	key := DashboardGenKey(7)
	assert.Equal(t, "dashboard:user:7:gen", key)

	gen, err := cache.Generation(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, gen)

	require.NoError(t, cache.Bump(ctx, key))
	require.NoError(t, cache.Bump(ctx, key))
	gen, err = cache.Generation(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)

	mr.Close()
	_, err = cache.Generation(ctx, key)
	assert.Error(t, err)
}

func TestCacheDisabled(t *testing.T) {
	var nilCache *Cache
	ctx := context.Background()
	for _, c := range []*Cache{nilCache, NewCache(nil, time.Minute)} {
		var got payload
		found, err := c.Get(ctx, "k", &got)
		assert.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, c.Set(ctx, "k", payload{}))
		gen, err := c.Generation(ctx, "g")
		assert.NoError(t, err)
		assert.Zero(t, gen)
		assert.NoError(t, c.Bump(ctx, "g"))
	}
}
