package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists payloads across runs. Payload bytes are written as-is
// alongside a small JSON metadata sidecar; archives run to hundreds of
// megabytes, so they are never wrapped in an encoded envelope.
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a disk cache rooted at dir with a default TTL.
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{dir: dir, ttl: ttl}
}

type diskMeta struct {
	ExpiresAt time.Time `json:"expires_at"`
}

func (c *DiskCache) Get(key string) ([]byte, bool) {
	metaRaw, err := os.ReadFile(c.metaPath(key))
	if err != nil {
		return nil, false
	}
	var meta diskMeta
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, false
	}
	if time.Now().After(meta.ExpiresAt) {
		_ = c.Delete(key)
		return nil, false
	}

	data, err := os.ReadFile(c.dataPath(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.dataPath(key), value, 0644); err != nil {
		return fmt.Errorf("write cache payload: %w", err)
	}
	metaRaw, err := json.Marshal(diskMeta{ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return fmt.Errorf("marshal cache meta: %w", err)
	}
	if err := os.WriteFile(c.metaPath(key), metaRaw, 0644); err != nil {
		return fmt.Errorf("write cache meta: %w", err)
	}
	return nil
}

func (c *DiskCache) Delete(key string) error {
	_ = os.Remove(c.metaPath(key))
	return os.Remove(c.dataPath(key))
}

func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *DiskCache) dataPath(key string) string {
	return filepath.Join(c.dir, key+".cache")
}

func (c *DiskCache) metaPath(key string) string {
	return filepath.Join(c.dir, key+".meta")
}
