package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/rivalry/internal/cache"
	"github.com/ppiankov/rivalry/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedDay = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func openSQLite(t *testing.T) *SQLStore {
	t.Helper()
	s, err := Open(context.Background(), model.StoreConfig{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "facts.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSeed(t *testing.T) {
	categories, stats := Seed(seedDay)

	require.Len(t, categories, 10)
	require.Len(t, stats, 39)

	known := make(map[int64]bool)
	for _, c := range categories {
		known[c.ID] = true
	}

	var prev int64
	for _, s := range stats {
		assert.Greater(t, s.ID, prev, "ids ascend")
		prev = s.ID
		assert.True(t, known[s.CategoryID], "stat %d references a known category", s.ID)
		assert.Equal(t, "2025-03-14", s.LastUpdated)
	}

	assert.Equal(t, model.StatRecord{
		ID: 1, CategoryID: 1, Description: "Total Career Goals",
		ValueA: "821", ValueB: "837", LastUpdated: "2025-03-14",
	}, stats[0])
}

func TestSeed_ReturnsCopies(t *testing.T) {
	categories, stats := Seed(seedDay)
	categories[0].Name = "changed"
	stats[0].ValueA = "0"

	categories, stats = Seed(seedDay)
	assert.Equal(t, "goals", categories[0].Name)
	assert.Equal(t, "821", stats[0].ValueA)
}

func TestNumberStats(t *testing.T) {
	got := numberStats([]model.StatRecord{
		{Description: "a"},
		{ID: 5, Description: "b"},
		{Description: "c"},
	})
	assert.Equal(t, []int64{6, 5, 7}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func testStores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": openSQLite(t),
	}
}

func TestStore_ReplaceAndList(t *testing.T) {
	ctx := context.Background()
	categories, stats := Seed(seedDay)

	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			n, err := s.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)

			require.NoError(t, s.Replace(ctx, categories, stats))

			n, err = s.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 39, n)

			gotCats, err := s.ListCategories(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(categories, gotCats); diff != "" {
				t.Errorf("categories mismatch (-want +got):\n%s", diff)
			}

			goals, err := s.ListStats(ctx, 1)
			require.NoError(t, err)
			require.Len(t, goals, 4)
			assert.Equal(t, "Total Career Goals", goals[0].Description)
			assert.Equal(t, "Champions League Goals", goals[3].Description)

			none, err := s.ListStats(ctx, 99)
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestStore_ReplaceDiscardsPreviousContent(t *testing.T) {
	ctx := context.Background()
	categories, stats := Seed(seedDay)

	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Replace(ctx, categories, stats))

			scraped := []model.StatRecord{
				{CategoryID: 1, Description: "Goals", ValueA: "850", ValueB: "900"},
				{CategoryID: 1, Description: "Penalty Goals", ValueA: "N/A", ValueB: "160"},
			}
			require.NoError(t, s.Replace(ctx, categories[:1], scraped))

			n, err := s.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			gotCats, err := s.ListCategories(ctx)
			require.NoError(t, err)
			assert.Len(t, gotCats, 1)

			goals, err := s.ListStats(ctx, 1)
			require.NoError(t, err)
			require.Len(t, goals, 2)
			assert.Equal(t, int64(1), goals[0].ID)
			assert.Equal(t, int64(2), goals[1].ID)
			assert.Equal(t, "N/A", goals[1].ValueA)
		})
	}
}

func TestSQLStore_ReplaceIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)
	categories, stats := Seed(seedDay)
	require.NoError(t, s.Replace(ctx, categories, stats))

	// Duplicate category names violate the UNIQUE constraint.
	bad := []model.Category{
		{ID: 1, Name: "goals", DisplayName: "Goals"},
		{ID: 2, Name: "goals", DisplayName: "Goals again"},
	}
	require.Error(t, s.Replace(ctx, bad, nil))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 39, n)
}

func TestSQLStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "facts.db")
	cfg := model.StoreConfig{Driver: DriverSQLite, DSN: path}

	s, err := Open(ctx, cfg)
	require.NoError(t, err)
	categories, stats := Seed(seedDay)
	require.NoError(t, s.Replace(ctx, categories, stats))
	require.NoError(t, s.Close())

	s, err = Open(ctx, cfg)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 39, n)
	assert.Equal(t, DriverSQLite, s.Driver())
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), model.StoreConfig{Driver: "mysql", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store driver")
}

func TestOpenFromConfig_Memory(t *testing.T) {
	s, err := OpenFromConfig(context.Background(), model.StoreConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)
}

func TestCategoryByName(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	categories, stats := Seed(seedDay)
	require.NoError(t, s.Replace(ctx, categories, stats))

	cat, err := CategoryByName(ctx, s, "Hat_Tricks")
	require.NoError(t, err)
	assert.Equal(t, int64(8), cat.ID)

	_, err = CategoryByName(ctx, s, "dribbles")
	assert.ErrorIs(t, err, ErrNotFound)
}

type countingReader struct {
	Reader
	categoryCalls int
	statCalls     int
	err           error
}

func (c *countingReader) ListCategories(ctx context.Context) ([]model.Category, error) {
	c.categoryCalls++
	if c.err != nil {
		return nil, c.err
	}
	return c.Reader.ListCategories(ctx)
}

func (c *countingReader) ListStats(ctx context.Context, id int64) ([]model.StatRecord, error) {
	c.statCalls++
	if c.err != nil {
		return nil, c.err
	}
	return c.Reader.ListStats(ctx, id)
}

func TestCachedStore(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	categories, stats := Seed(seedDay)
	require.NoError(t, mem.Replace(ctx, categories, stats))

	inner := &countingReader{Reader: mem}
	s := NewCachedStore(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, zerolog.Nop())

	for i := 0; i < 3; i++ {
		got, err := s.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 10)

		recs, err := s.ListStats(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, recs, 6)
	}
	assert.Equal(t, 1, inner.categoryCalls)
	assert.Equal(t, 1, inner.statCalls)

	require.NoError(t, mem.Replace(ctx, categories[:2], nil))
	got, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 10, "stale until invalidated")

	require.NoError(t, s.Invalidate())
	got, err = s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, inner.categoryCalls)
}

func TestCachedStore_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	inner := &countingReader{Reader: NewMemory(), err: boom}
	s := NewCachedStore(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, zerolog.Nop())

	_, err := s.ListCategories(ctx)
	assert.ErrorIs(t, err, boom)

	inner.err = nil
	_, err = s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.categoryCalls)
}

func TestCachedStore_CorruptEntryReloads(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	categories, stats := Seed(seedDay)
	require.NoError(t, mem.Replace(ctx, categories, stats))

	c := cache.NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set(cache.CategoriesKey(), []byte("{not json"), 0))

	s := NewCachedStore(mem, c, time.Minute, zerolog.Nop())
	got, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestCachedStore_NilCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingReader{Reader: NewMemory()}
	s := NewCachedStore(inner, nil, time.Minute, zerolog.Nop())

	_, _ = s.ListCategories(ctx)
	_, _ = s.ListCategories(ctx)
	assert.Equal(t, 2, inner.categoryCalls)
	assert.NoError(t, s.Invalidate())
}
