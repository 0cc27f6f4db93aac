package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/academic-hub-api/internal/logger"
)

type payload struct {
	Total int `json:"total"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), logger.Nop())
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestCache_SetGetDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got payload
	assert.False(t, c.GetJSON(ctx, "stats", &got))

	require.NoError(t, c.SetJSON(ctx, "stats", payload{Total: 3}, time.Minute))
	require.True(t, c.GetJSON(ctx, "stats", &got))
	assert.Equal(t, 3, got.Total)

	mr.FastForward(2 * time.Minute)
	assert.False(t, c.GetJSON(ctx, "stats", &got))

	require.NoError(t, c.SetJSON(ctx, "stats", payload{Total: 4}, time.Minute))
	require.NoError(t, c.Delete(ctx, "stats"))
	assert.False(t, c.GetJSON(ctx, "stats", &got))
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("stats", "not json"))

	var got payload
	assert.False(t, c.GetJSON(context.Background(), "stats", &got))
}

func TestCache_NilIsSafe(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var got payload
	assert.False(t, c.GetJSON(ctx, "stats", &got))
	assert.NoError(t, c.SetJSON(ctx, "stats", payload{}, time.Minute))
	assert.NoError(t, c.Delete(ctx, "stats"))
	assert.Nil(t, c.Client())
	assert.NoError(t, c.Close())
}

func TestConnect(t *testing.T) {
	assert.Nil(t, Connect(context.Background(), "", "", logger.Nop()))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c := Connect(context.Background(), mr.Addr(), "", logger.Nop())
	require.NotNil(t, c)
	defer c.Close()
	assert.NotNil(t, c.Client())
}
