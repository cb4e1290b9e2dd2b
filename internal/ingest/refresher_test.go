package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/rivalry/internal/model"
	"github.com/ppiankov/rivalry/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsPage = `<html><body>
<section class="stats-comparison">
  <h2>Goals</h2>
  <div class="stat-row"><span>Total Goals</span><div class="messi">850</div><div class="ronaldo">900</div></div>
  <div class="stat-row"><span>Penalty Goals</span><div class="messi">112</div><div class="ronaldo">165</div></div>
</section>
<section class="stats-comparison">
  <h2>Trophies</h2>
  <div class="stat-row"><span>World Cup Titles</span><div class="messi">1</div><div class="ronaldo">0</div></div>
</section>
</body></html>`

type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	f.calls = append(f.calls, rawURL)
	page, ok := f.pages[rawURL]
	if !ok {
		return nil, errors.New("fetch: connection refused")
	}
	return &FetchResult{HTML: page, StatusCode: 200, FinalURL: rawURL}, nil
}

type countingInvalidator struct {
	calls int
	err   error
}

func (c *countingInvalidator) Invalidate() error {
	c.calls++
	return c.err
}

type failingWriter struct{ store.Writer }

func (failingWriter) Replace(context.Context, []model.Category, []model.StatRecord) error {
	return errors.New("database is locked")
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRefresher(f PageFetcher, w store.Writer, sources []string, inv ...Invalidator) *Refresher {
	r := NewRefresher(f, w, sources, zerolog.Nop(), inv...)
	r.now = func() time.Time { return fixedNow }
	return r
}

func TestRefresh_FirstReachableSourceWins(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{pages: map[string]string{
		"https://b.example": statsPage,
		"https://c.example": statsPage,
	}}
	mem := store.NewMemory()
	inv := &countingInvalidator{}
	r := newTestRefresher(f, mem, []string{"https://a.example", "https://b.example", "https://c.example"}, inv)

	report, err := r.Refresh(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, f.calls)
	assert.Equal(t, "https://b.example", report.Source)
	assert.False(t, report.Fallback)
	assert.Equal(t, 3, report.Stats)
	assert.Equal(t, 10, report.Categories)
	require.Len(t, report.Attempts, 2)
	assert.NotEmpty(t, report.Attempts[0].Error)
	assert.Empty(t, report.Attempts[1].Error)
	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 1, inv.calls)

	goals, err := mem.ListStats(ctx, 1)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, model.StatRecord{
		ID: 1, CategoryID: 1, Description: "Total Goals",
		ValueA: "850", ValueB: "900", LastUpdated: "2025-06-01",
	}, goals[0])

	trophies, err := mem.ListStats(ctx, 3)
	require.NoError(t, err)
	require.Len(t, trophies, 1)
	assert.Equal(t, "World Cup Titles", trophies[0].Description)
}

func TestRefresh_NoSourceReachableUsesSeed(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{}
	mem := store.NewMemory()
	r := newTestRefresher(f, mem, model.DefaultSources)

	report, err := r.Refresh(ctx)
	require.NoError(t, err)

	assert.Len(t, f.calls, 3)
	assert.Equal(t, SourceSeed, report.Source)
	assert.True(t, report.Fallback)
	assert.Equal(t, 39, report.Stats)

	n, err := mem.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 39, n)
}

func TestRefresh_UnparseablePageUsesSeed(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{pages: map[string]string{"https://a.example": "<html><body><p>Under construction</p></body></html>"}}
	mem := store.NewMemory()
	r := newTestRefresher(f, mem, []string{"https://a.example", "https://b.example"})

	report, err := r.Refresh(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example"}, f.calls, "later sources are not tried")
	assert.Equal(t, "https://a.example", report.Source)
	assert.True(t, report.Fallback)

	n, err := mem.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 39, n)
}

func TestRefresh_NoSourcesConfigured(t *testing.T) {
	r := newTestRefresher(&fakeFetcher{}, store.NewMemory(), nil)

	report, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Fallback)
	assert.Equal(t, SourceSeed, report.Source)
}

func TestRefresh_WriteFailure(t *testing.T) {
	inv := &countingInvalidator{}
	r := newTestRefresher(&fakeFetcher{}, failingWriter{}, nil, inv)

	_, err := r.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replace facts")
	assert.Zero(t, inv.calls)
}

func TestRefresh_InvalidationFailureIsNotFatal(t *testing.T) {
	inv := &countingInvalidator{err: errors.New("redis down")}
	r := newTestRefresher(&fakeFetcher{}, store.NewMemory(), nil, inv)

	_, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)
}

func TestRefresh_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mem := store.NewMemory()
	r := newTestRefresher(&fakeFetcher{}, mem, []string{"https://a.example", "https://b.example"})

	_, err := r.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	n, _ := mem.Count(context.Background())
	assert.Zero(t, n)
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{}
	mem := store.NewMemory()
	inv := &countingInvalidator{}
	r := newTestRefresher(f, mem, model.DefaultSources, inv)

	report, err := r.Initialize(ctx)
	require.NoError(t, err)
	assert.Empty(t, f.calls)
	assert.Equal(t, SourceSeed, report.Source)
	assert.Equal(t, 10, report.Categories)
	assert.Equal(t, 39, report.Stats)
	assert.Equal(t, 1, inv.calls)

	stats, err := mem.ListStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", stats[0].LastUpdated)
}

func TestFetchFirst_WrapsErrNoSources(t *testing.T) {
	r := newTestRefresher(&fakeFetcher{}, store.NewMemory(), []string{"https://a.example"})

	_, _, attempts, err := r.fetchFirst(context.Background())
	assert.ErrorIs(t, err, ErrNoSources)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Len(t, attempts, 1)
}
