package store

import (
	"context"
	"sort"
	"sync"

	"github.com/ppiankov/rivalry/internal/model"
)

// Memory is an in-process Store
type Memory struct {
	mu         sync.RWMutex
	categories []model.Category
	stats      []model.StatRecord
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

// ListCategories returns categories ordered by ID
func (m *Memory) ListCategories(ctx context.Context) ([]model.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

// ListStats returns the records of one category ordered by ID
func (m *Memory) ListStats(ctx context.Context, categoryID int64) ([]model.StatRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.StatRecord
	for _, s := range m.stats {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

// Replace swaps the whole content
func (m *Memory) Replace(ctx context.Context, categories []model.Category, stats []model.StatRecord) error {
	cats := make([]model.Category, len(categories))
	copy(cats, categories)
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })

	recs := numberStats(stats)
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })

	m.mu.Lock()
	m.categories = cats
	m.stats = recs
	m.mu.Unlock()
	return nil
}

// Count returns the number of stat records
func (m *Memory) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stats), nil
}

// Close is a no-op
func (m *Memory) Close() error {
	return nil
}
