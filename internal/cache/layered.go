package cache

import (
	"errors"
	"time"
)

// LayeredCache reads through a fast front cache to a slower back cache.
// Back hits are promoted to the front with the front's default TTL.
type LayeredCache struct {
	front Cache
	back  Cache
}

// NewLayeredCache stacks a memory cache over a disk cache in dir
func NewLayeredCache(memoryTTL time.Duration, dir string, diskTTL time.Duration) *LayeredCache {
	return NewLayeredCacheFrom(NewMemoryCache(memoryTTL, 2*memoryTTL), NewDiskCache(dir, diskTTL))
}

// NewLayeredCacheFrom stacks two existing caches
func NewLayeredCacheFrom(front, back Cache) *LayeredCache {
	return &LayeredCache{front: front, back: back}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.front.Get(key); found {
		return val, true
	}

	val, found := c.back.Get(key)
	if !found {
		return nil, false
	}
	_ = c.front.Set(key, val, 0)
	return val, true
}

// Set writes the back cache first, so the front never holds an entry the
// back failed to store.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.back.Set(key, value, ttl); err != nil {
		return err
	}
	return c.front.Set(key, value, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	return errors.Join(c.front.Delete(key), c.back.Delete(key))
}

func (c *LayeredCache) Clear() error {
	return errors.Join(c.front.Clear(), c.back.Clear())
}
