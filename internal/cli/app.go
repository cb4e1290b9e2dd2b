package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ppiankov/rivalry/internal/cache"
	"github.com/ppiankov/rivalry/internal/engine"
	"github.com/ppiankov/rivalry/internal/ingest"
	"github.com/ppiankov/rivalry/internal/model"
	"github.com/ppiankov/rivalry/internal/store"
	"github.com/ppiankov/rivalry/internal/util"
	"github.com/ppiankov/rivalry/internal/worker"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// app holds the wired collaborators shared by all commands
type app struct {
	cfg       *model.Config
	logger    zerolog.Logger
	store     store.Store
	cache     cache.Cache
	facts     *store.CachedStore
	engine    *engine.Engine
	refresher *ingest.Refresher
}

// newApp loads the configuration and opens the fact store
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return newAppWithConfig(ctx, cfg, newLogger(cfg.Log))
}

func newAppWithConfig(ctx context.Context, cfg *model.Config, logger zerolog.Logger) (*app, error) {
	st, err := store.OpenFromConfig(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	c, err := cache.New(cfg.Cache)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("open cache: %w", err)
	}
	facts := store.NewCachedStore(st, c, cfg.Cache.TTL, logger)

	fetcher := ingest.NewFetcher(cfg.HTTP,
		ingest.WithLimiter(worker.NewLimiterFromConfig(cfg.RateLimiting)),
		ingest.WithFetchLogger(logger),
	)
	if cfg.HTTP.RespectRobots {
		ingest.WithRobots(util.NewRobotsCheckerWithClient(cfg.HTTP.UserAgent, fetcher.Client()))(fetcher)
	}

	logger.Debug().
		Str("driver", cfg.Store.Driver).
		Bool("cache", c != nil).
		Str("cache_backend", cfg.Cache.Backend).
		Int("sources", len(cfg.Sources)).
		Msg("app initialized")

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		cache:     c,
		facts:     facts,
		engine:    engine.New(facts, cfg.Roster, logger),
		refresher: ingest.NewRefresher(fetcher, st, cfg.Sources, logger, facts),
	}, nil
}

// ensureData fills an empty store. It scrapes the sources first and falls
// back to seed data, like a refresh.
func (a *app) ensureData(ctx context.Context) error {
	n, err := a.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count stats: %w", err)
	}
	if n > 0 {
		return nil
	}

	a.logger.Info().Msg("fact store is empty, loading data")
	if _, err := a.refresher.Refresh(ctx); err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	return nil
}

// Close releases the store and the cache connection
func (a *app) Close() error {
	var errs []error
	if closer, ok := a.cache.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	errs = append(errs, a.store.Close())
	return errors.Join(errs...)
}
