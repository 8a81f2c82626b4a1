package common

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetAndLookup(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)

	c.Set(CacheKeyUserByID(7), "root", 0)

	v, ok := Lookup[string](c, CacheKeyUserByID(7))
	assert.True(t, ok)
	assert.Equal(t, "root", v)

	_, ok = Lookup[int](c, CacheKeyUserByID(7))
	assert.False(t, ok, "a value of another type is a miss")

	_, ok = Lookup[string](c, "missing")
	assert.False(t, ok)
}

func TestCache_Expiration(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)

	c.Set("key", "value", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := Lookup[string](c, "key")
	assert.False(t, ok, "expected key to expire")
}

func TestCache_Invalidate(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)

	c.Set(CacheKeyBlogStats, 1, 0)
	c.Set(CacheKeyUserByID(7), 2, 0)
	c.Invalidate(CacheKeyBlogStats)

	_, ok := Lookup[int](c, CacheKeyBlogStats)
	assert.False(t, ok)

	v, ok := Lookup[int](c, CacheKeyUserByID(7))
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestCache_SetIfCurrent(t *testing.T) {
	tests := []struct {
		name       string
		invalidate bool
		wantStored bool
	}{
		{name: "unchanged version", invalidate: false, wantStored: true},
		{name: "invalidated while computing", invalidate: true, wantStored: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCache(time.Minute, time.Minute)

			version := c.Version(CacheKeyBlogStats)
			if tc.invalidate {
				c.Invalidate(CacheKeyBlogStats)
			}

			stored := c.SetIfCurrent(CacheKeyBlogStats, "stale", 0, version)
			assert.Equal(t, tc.wantStored, stored)

			_, ok := Lookup[string](c, CacheKeyBlogStats)
			assert.Equal(t, tc.wantStored, ok)
		})
	}
}

func TestCache_ConcurrentInvalidate(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Invalidate(CacheKeyBlogStats)
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), c.Version(CacheKeyBlogStats))
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "user_by_id:42", CacheKeyUserByID(42))
	assert.Equal(t, "blog_stats", CacheKeyBlogStats)
}
