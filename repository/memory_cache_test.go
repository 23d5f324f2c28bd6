package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", 0))

	val, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)

	_, ok = cache.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))

	now = now.Add(59 * time.Second)
	_, ok := cache.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestCacheKey_Stable(t *testing.T) {
	a := CacheKey("calc", []byte(`{"capital":1000}`))
	b := CacheKey("calc", []byte(`{"capital":1000}`))
	c := CacheKey("calc", []byte(`{"capital":1001}`))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "calc:")
}

func TestMemoryCache_ExpiredReadKeepsConcurrentSet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	require.NoError(t, cache.Set(ctx, "k", "stale", time.Minute))

	now = now.Add(2 * time.Minute)
	refreshed := false
	cache.now = func() time.Time {
		// lands between the read and the eviction
		if !refreshed {
			refreshed = true
			require.NoError(t, cache.Set(ctx, "k", "fresh", 0))
		}
		return now
	}

	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)

	val, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "fresh", val)
}
