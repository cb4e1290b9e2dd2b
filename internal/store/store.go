// Package store persists categories and stat records.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/ppiankov/rivalry/internal/model"
)

// ErrNotFound is returned when a looked-up category does not exist
var ErrNotFound = errors.New("record not found")

// Reader is the read side used to answer questions
type Reader interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListStats(ctx context.Context, categoryID int64) ([]model.StatRecord, error)
}

// Writer replaces the whole fact table at once
type Writer interface {
	// Replace deletes every category and stat and inserts the given ones
	// atomically. Records with a zero ID are numbered in slice order.
	Replace(ctx context.Context, categories []model.Category, stats []model.StatRecord) error
	Count(ctx context.Context) (int, error)
}

// Store is a full fact store
type Store interface {
	Reader
	Writer
	Close() error
}

// CategoryByName finds a category by its key, case-insensitively
func CategoryByName(ctx context.Context, r Reader, name string) (model.Category, error) {
	categories, err := r.ListCategories(ctx)
	if err != nil {
		return model.Category{}, err
	}
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, nil
		}
	}
	return model.Category{}, ErrNotFound
}

// numberStats assigns sequential IDs to records that have none
func numberStats(stats []model.StatRecord) []model.StatRecord {
	out := make([]model.StatRecord, len(stats))
	var next int64
	for _, s := range stats {
		if s.ID > next {
			next = s.ID
		}
	}
	for i, s := range stats {
		if s.ID == 0 {
			next++
			s.ID = next
		}
		out[i] = s
	}
	return out
}
