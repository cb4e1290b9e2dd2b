package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/rivalry/internal/model"
	"github.com/ppiankov/rivalry/internal/scrape"
	"github.com/ppiankov/rivalry/internal/store"
	"github.com/rs/zerolog"
)

// ErrNoSources means no configured source could be fetched
var ErrNoSources = errors.New("no source reachable")

// SourceSeed names the built-in data set in reports
const SourceSeed = "seed"

// PageFetcher downloads one page
type PageFetcher interface {
	FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error)
}

// Invalidator drops cached reads after the store is rewritten
type Invalidator interface {
	Invalidate() error
}

// SourceAttempt records the outcome of trying one source
type SourceAttempt struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

// RefreshReport summarises one refresh run
type RefreshReport struct {
	RunID      string          `json:"run_id"`
	Source     string          `json:"source"`
	Fallback   bool            `json:"fallback"`
	Categories int             `json:"categories"`
	Stats      int             `json:"stats"`
	Attempts   []SourceAttempt `json:"attempts,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	Duration   time.Duration   `json:"duration"`
}

// Refresher rebuilds the fact table from the first reachable source,
// falling back to seed data. Runs are serialised.
type Refresher struct {
	mu           sync.Mutex
	fetcher      PageFetcher
	parser       *scrape.Parser
	writer       store.Writer
	sources      []string
	invalidators []Invalidator
	logger       zerolog.Logger
	now          func() time.Time
}

// NewRefresher creates a refresher writing to w
func NewRefresher(fetcher PageFetcher, w store.Writer, sources []string, logger zerolog.Logger, invalidators ...Invalidator) *Refresher {
	return &Refresher{
		fetcher:      fetcher,
		parser:       scrape.NewParser(),
		writer:       w,
		sources:      sources,
		invalidators: invalidators,
		logger:       logger,
		now:          time.Now,
	}
}

// Refresh scrapes the sources in order. The first source that answers
// is the only one parsed; if it yields nothing, seed data is written.
func (r *Refresher) Refresh(ctx context.Context) (*RefreshReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := r.newReport()
	logger := r.logger.With().Str("run_id", report.RunID).Logger()

	source, page, attempts, err := r.fetchFirst(ctx)
	report.Attempts = attempts
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn().Err(err).Msg("no source reachable, using seed data")
		return r.writeSeed(ctx, report, logger)
	}

	parsed, err := r.parser.Parse(page.HTML)
	if err != nil || len(parsed) == 0 {
		logger.Warn().Err(err).Str("source", source).Msg("no stats extracted, using seed data")
		report.Source = source
		return r.writeSeed(ctx, report, logger)
	}

	categories := store.SeedCategories
	stats := toRecords(parsed, categories, r.now())
	if len(stats) == 0 {
		report.Source = source
		return r.writeSeed(ctx, report, logger)
	}

	if err := r.write(ctx, categories, stats); err != nil {
		return nil, err
	}

	report.Source = source
	report.Categories = len(categories)
	report.Stats = len(stats)
	report.Duration = r.now().Sub(report.StartedAt)

	logger.Info().
		Str("source", source).
		Int("stats", report.Stats).
		Msg("refresh complete")
	return report, nil
}

// Initialize writes the seed data without contacting any source
func (r *Refresher) Initialize(ctx context.Context) (*RefreshReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := r.newReport()
	return r.writeSeed(ctx, report, r.logger.With().Str("run_id", report.RunID).Logger())
}

func (r *Refresher) newReport() *RefreshReport {
	return &RefreshReport{
		RunID:     uuid.NewString(),
		StartedAt: r.now(),
	}
}

func (r *Refresher) fetchFirst(ctx context.Context) (string, *FetchResult, []SourceAttempt, error) {
	var (
		attempts []SourceAttempt
		errs     []error
	)
	for _, source := range r.sources {
		page, err := r.fetcher.FetchWithRetry(ctx, source)
		if err == nil {
			attempts = append(attempts, SourceAttempt{URL: source})
			return source, page, attempts, nil
		}
		r.logger.Debug().Err(err).Str("source", source).Msg("source failed")
		attempts = append(attempts, SourceAttempt{URL: source, Error: err.Error()})
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return "", nil, attempts, ErrNoSources
	}
	return "", nil, attempts, fmt.Errorf("%w: %w", ErrNoSources, errors.Join(errs...))
}

func (r *Refresher) writeSeed(ctx context.Context, report *RefreshReport, logger zerolog.Logger) (*RefreshReport, error) {
	categories, stats := store.Seed(r.now())
	if err := r.write(ctx, categories, stats); err != nil {
		return nil, err
	}

	if report.Source == "" {
		report.Source = SourceSeed
	}
	report.Fallback = true
	report.Categories = len(categories)
	report.Stats = len(stats)
	report.Duration = r.now().Sub(report.StartedAt)

	logger.Info().Int("stats", report.Stats).Msg("seed data written")
	return report, nil
}

func (r *Refresher) write(ctx context.Context, categories []model.Category, stats []model.StatRecord) error {
	if err := r.writer.Replace(ctx, categories, stats); err != nil {
		return fmt.Errorf("replace facts: %w", err)
	}
	for _, inv := range r.invalidators {
		if err := inv.Invalidate(); err != nil {
			r.logger.Warn().Err(err).Msg("cache invalidation failed")
		}
	}
	return nil
}

// toRecords maps parsed rows onto known categories, dropping rows whose
// category is unknown. IDs are left for the store to assign.
func toRecords(parsed []scrape.ParsedStat, categories []model.Category, now time.Time) []model.StatRecord {
	ids := make(map[string]int64, len(categories))
	for _, c := range categories {
		ids[c.Name] = c.ID
	}

	stamp := now.Format(store.SeedDateLayout)
	var out []model.StatRecord
	for _, p := range parsed {
		id, ok := ids[p.Category]
		if !ok {
			continue
		}
		out = append(out, model.StatRecord{
			CategoryID:  id,
			Description: p.Description,
			ValueA:      p.ValueA,
			ValueB:      p.ValueB,
			LastUpdated: stamp,
		})
	}
	return out
}
