package cache

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
	Names []string `json:"names"`
}

func newTestCache(t *testing.T) (*Listing, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client, 30*time.Second), mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "listing:deals:abc", payload{Names: []string{"a", "b"}})

	var got payload
	require.True(t, c.Get(ctx, "listing:deals:abc", &got))
	assert.Equal(t, []string{"a", "b"}, got.Names)
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got payload
	assert.False(t, c.Get(context.Background(), "listing:none", &got))
}

func TestCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "listing:deals:abc", payload{Names: []string{"a"}})
	mr.FastForward(31 * time.Second)

	var got payload
	assert.False(t, c.Get(ctx, "listing:deals:abc", &got))
}

func TestCacheInvalidatePattern(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "listing:deals:x", payload{Names: []string{"a"}})
	c.Set(ctx, "listing:best-sellers:y", payload{Names: []string{"b"}})

	c.Invalidate(ctx, "listing:deals:*")

	var got payload
	assert.False(t, c.Get(ctx, "listing:deals:x", &got))
	assert.True(t, c.Get(ctx, "listing:best-sellers:y", &got))
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Listing

	c.Set(context.Background(), "k", payload{})
	c.Invalidate(context.Background(), "*")

	var got payload
	assert.False(t, c.Get(context.Background(), "k", &got))
}
