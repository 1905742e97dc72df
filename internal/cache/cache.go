// Package cache provides the transport-layer result cache. The validation
// engine is a pure function and knows nothing about caching; only the tool
// layer consults this.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching serialized tool results.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a cache key from the validation inputs: content, the source
// texts in order, and the tool mode. Any change to any input produces a
// different key.
func Key(content string, sources []string, mode string) string {
	h := sha256.New()
	h.Write([]byte(content))
	for _, s := range sources {
		h.Write([]byte{0})
		h.Write([]byte(s))
	}
	h.Write([]byte{0})
	h.Write([]byte(mode))
	return "lithium:v1:" + hex.EncodeToString(h.Sum(nil))
}
