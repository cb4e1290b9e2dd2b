// Package cache provides the byte caches that sit in front of the fact store.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/rivalry/internal/model"
)

// KeyPrefix namespaces every entry written by this package
const KeyPrefix = "rivalry:v1:"

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a namespaced cache key from its parts
func Key(parts ...string) string {
	return KeyPrefix + strings.Join(parts, ":")
}

// CategoriesKey is the key of the cached category list
func CategoriesKey() string {
	return Key("categories")
}

// StatsKey is the key of the cached stat records of one category
func StatsKey(categoryID int64) string {
	return Key("stats", fmt.Sprintf("%d", categoryID))
}

// fileName maps a key to a filesystem-safe name
func fileName(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// New builds the cache selected by cfg. A disabled cache returns nil.
func New(cfg model.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Backend {
	case "", "memory":
		return NewMemoryCache(cfg.TTL, 2*cfg.TTL), nil
	case "layered":
		return NewLayeredCache(cfg.TTL, cfg.Dir, cfg.TTL), nil
	case "disk":
		return NewDiskCache(cfg.Dir, cfg.TTL), nil
	case "redis":
		return NewRedisCache(cfg.Redis, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
