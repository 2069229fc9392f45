package cache

import (
	"time"
)

// LayeredCache combines a memory cache with a disk cache. Reads consult
// memory first and promote disk hits; writes go to both layers.
type LayeredCache struct {
	memory *MemoryCache
	disk   *DiskCache
	ttl    time.Duration
}

// NewLayeredCache creates a layered cache with the given disk directory and default TTL
func NewLayeredCache(dir string, ttl time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(ttl, 10*time.Minute),
		disk:   NewDiskCache(dir, ttl),
		ttl:    ttl,
	}
}

// Get retrieves a value, checking memory before disk
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		// Promote to memory for subsequent reads
		_ = c.memory.Set(key, val, c.ttl)
		return val, true
	}

	return nil, false
}

// Set stores a value in both layers
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes a value from both layers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear removes all values from both layers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
