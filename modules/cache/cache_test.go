package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRedisAddr requires Redis running on localhost:6379; tests skip otherwise.
const testRedisAddr = "localhost:6379"

func setupTestCache(t *testing.T, prefix string) *Cache {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	c := New(client, prefix, time.Minute)
	require.NoError(t, c.DeletePattern(ctx, "*"))
	t.Cleanup(func() {
		_ = c.DeletePattern(ctx, "*")
		_ = c.Close()
	})
	return c
}

type entry struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

func TestCache_GetSet(t *testing.T) {
	c := setupTestCache(t, "test:getset:")
	ctx := context.Background()

	var got entry
	found, err := c.Get(ctx, "product:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "product:1", entry{Name: "Pastel", Price: "8.50"}))

	found, err = c.Get(ctx, "product:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Pastel", got.Name)

	s := c.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.Equal(t, uint64(1), s.Sets)
}

func TestCache_DeletePattern(t *testing.T) {
	c := setupTestCache(t, "test:pattern:")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "product:1", entry{Name: "a"}))
	require.NoError(t, c.Set(ctx, "product:list", entry{Name: "b"}))
	require.NoError(t, c.Set(ctx, "product-type:1", entry{Name: "c"}))

	require.NoError(t, c.DeletePattern(ctx, "product:*"))

	var got entry
	found, err := c.Get(ctx, "product:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = c.Get(ctx, "product-type:1", &got)
	require.NoError(t, err)
	assert.True(t, found, "other namespaces are untouched")
}
