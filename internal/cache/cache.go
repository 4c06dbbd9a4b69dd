// Package cache holds parsed batch inputs so a work product referenced
// by many manifest entries is read and parsed once per run.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching parsed inputs
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
	Clear()
}

// FileKey builds a cache key from a file path and its modification
// time, so an edited file never serves a stale parse.
func FileKey(path string, modTime time.Time) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", path, modTime.UnixNano())))
	return "provgate:v1:" + hex.EncodeToString(hash[:])
}
