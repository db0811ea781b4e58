package cache

import "time"

// LayeredCache fronts the disk cache with a memory layer. Reads hit memory
// first and promote disk hits; writes go to both layers. Payloads above
// memoryLimit stay disk-only in both directions, so a cached archive never
// ends up pinned in process memory.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// memoryLimit bounds what the memory layer will hold. Cricsheet archives
// run to hundreds of megabytes.
const memoryLimit = 32 << 20

// NewLayeredCache composes a memory cache over a disk cache.
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, ok := c.memory.Get(key); ok {
		return val, true
	}
	if val, ok := c.disk.Get(key); ok {
		if len(val) <= memoryLimit {
			_ = c.memory.Set(key, val, 0)
		}
		return val, true
	}
	return nil, false
}

func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if len(value) <= memoryLimit {
		if err := c.memory.Set(key, value, ttl); err != nil {
			return err
		}
	}
	return c.disk.Set(key, value, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
