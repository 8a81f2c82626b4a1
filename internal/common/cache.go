package common

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const CacheKeyBlogStats = "blog_stats"

func CacheKeyUserByID(id int) string {
	return "user_by_id:" + strconv.Itoa(id)
}

// Cache is an in-process store for derived read models. Every key carries a
// version that Invalidate bumps, so a value computed before an invalidation
// can be discarded instead of overwriting the eviction.
type Cache struct {
	store *cache.Cache

	mu       sync.Mutex
	versions map[string]uint64
}

func NewCache(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store:    cache.New(defaultTTL, cleanupInterval),
		versions: make(map[string]uint64),
	}
}

// Set stores value under key. A zero ttl uses the cache default.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.store.Set(key, value, ttlOrDefault(ttl))
}

// Version reports the current version of key. Pass it to SetIfCurrent once
// the value is computed.
func (c *Cache) Version(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.versions[key]
}

// SetIfCurrent stores value only if key has not been invalidated since
// version was read. It reports whether the value was stored.
func (c *Cache) SetIfCurrent(key string, value any, ttl time.Duration, version uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.versions[key] != version {
		return false
	}

	c.store.Set(key, value, ttlOrDefault(ttl))
	return true
}

// Invalidate drops key and bumps its version.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.versions[key]++
	c.store.Delete(key)
}

// Lookup returns the value stored under key when it exists and has type T.
func Lookup[T any](c *Cache, key string) (T, bool) {
	var zero T

	v, ok := c.store.Get(key)
	if !ok {
		return zero, false
	}

	typed, ok := v.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return cache.DefaultExpiration
	}
	return ttl
}
