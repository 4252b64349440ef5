package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetAndGet(t *testing.T) {
	cache := NewCacheService(time.Minute, 10)

	cache.Set("key", "value")

	got, ok := cache.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	cache := NewCacheService(time.Minute, 10)

	_, ok := cache.Get("missing")
	assert.False(t, ok)
}

func TestCacheExpiredEntryIsAMiss(t *testing.T) {
	cache := NewCacheService(time.Minute, 10)

	cache.SetWithTTL("key", "value", -time.Second)

	_, ok := cache.Get("key")
	assert.False(t, ok)
}

func TestCacheDelete(t *testing.T) {
	cache := NewCacheService(time.Minute, 10)

	cache.Set("key", "value")
	cache.Delete("key")

	_, ok := cache.Get("key")
	assert.False(t, ok)
	assert.Zero(t, cache.Size())
}

func TestCacheEvictsOldestAtCapacity(t *testing.T) {
	cache := NewCacheService(time.Minute, 3)

	cache.SetWithTTL("oldest", 1, time.Second)
	cache.SetWithTTL("middle", 2, time.Minute)
	cache.SetWithTTL("newest", 3, time.Hour)

	cache.Set("overflow", 4)

	assert.Equal(t, 3, cache.Size())
	_, ok := cache.Get("oldest")
	assert.False(t, ok, "entry closest to expiry should have been evicted")
	_, ok = cache.Get("overflow")
	assert.True(t, ok)
}

func TestCacheCleanupExpired(t *testing.T) {
	cache := NewCacheService(time.Minute, 100)

	for i := 0; i < 5; i++ {
		cache.SetWithTTL(fmt.Sprintf("expired-%d", i), i, -time.Second)
	}
	cache.Set("fresh", "value")

	evicted := cache.CleanupExpired()

	assert.Equal(t, 5, evicted)
	assert.Equal(t, 1, cache.Size())
	_, ok := cache.Get("fresh")
	assert.True(t, ok)
}

func TestCacheClear(t *testing.T) {
	cache := NewCacheService(time.Minute, 10)

	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Clear()

	assert.Zero(t, cache.Size())
}
