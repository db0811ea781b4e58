// Package cache provides TTL caching for downloaded Cricsheet archives, so
// repeated check/download runs within the freshness window do not re-fetch
// hundreds of megabytes.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "cricketdata:v1:" + hex.EncodeToString(sum[:])
}
