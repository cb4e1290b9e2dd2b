package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Runner is anything that can run a refresh
type Runner interface {
	Refresh(ctx context.Context) (*RefreshReport, error)
}

// RunScheduled refreshes on a cron schedule ("0 */6 * * *", "@every 6h")
// until ctx is cancelled. Overlapping runs are skipped.
func RunScheduled(ctx context.Context, spec string, r Runner, logger zerolog.Logger) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() {
		report, err := r.Refresh(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("scheduled refresh failed")
			return
		}
		logger.Info().
			Str("run_id", report.RunID).
			Str("source", report.Source).
			Bool("fallback", report.Fallback).
			Int("stats", report.Stats).
			Msg("scheduled refresh complete")
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}

	c.Start()
	logger.Info().Str("schedule", spec).Msg("refresh scheduler started")

	<-ctx.Done()

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		logger.Warn().Msg("stop timeout waiting for running refresh")
	}
	return nil
}
