package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/rivalry/internal/cache"
	"github.com/ppiankov/rivalry/internal/model"
	"github.com/rs/zerolog"
)

// CachedStore serves reads from a cache in front of another Reader.
// Entries are JSON-encoded so any byte cache backend works.
type CachedStore struct {
	next   Reader
	cache  cache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedStore wraps next with c. A nil cache disables caching.
func NewCachedStore(next Reader, c cache.Cache, ttl time.Duration, logger zerolog.Logger) *CachedStore {
	return &CachedStore{next: next, cache: c, ttl: ttl, logger: logger}
}

// ListCategories returns cached categories, loading them on a miss
func (s *CachedStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	return cached(s, cache.CategoriesKey(), func() ([]model.Category, error) {
		return s.next.ListCategories(ctx)
	})
}

// ListStats returns cached records, loading them on a miss
func (s *CachedStore) ListStats(ctx context.Context, categoryID int64) ([]model.StatRecord, error) {
	return cached(s, cache.StatsKey(categoryID), func() ([]model.StatRecord, error) {
		return s.next.ListStats(ctx, categoryID)
	})
}

// Invalidate drops every cached entry. Call it after the store is rewritten.
func (s *CachedStore) Invalidate() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Clear()
}

func cached[T any](s *CachedStore, key string, load func() ([]T, error)) ([]T, error) {
	if s.cache == nil {
		return load()
	}

	if data, ok := s.cache.Get(key); ok {
		var out []T
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		s.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		_ = s.cache.Delete(key)
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	if err := s.cache.Set(key, data, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return out, nil
}
