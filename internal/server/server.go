// Package server exposes the question engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ppiankov/rivalry/internal/ingest"
	"github.com/ppiankov/rivalry/internal/model"
	"github.com/ppiankov/rivalry/internal/store"
	"github.com/rs/zerolog"
)

// Asker answers one question
type Asker interface {
	Ask(ctx context.Context, question string) (*model.Answer, error)
}

// DataLoader rebuilds the fact table
type DataLoader interface {
	Refresh(ctx context.Context) (*ingest.RefreshReport, error)
	Initialize(ctx context.Context) (*ingest.RefreshReport, error)
}

// Server holds the HTTP handlers and their collaborators
type Server struct {
	asker   Asker
	facts   store.Reader
	loader  DataLoader
	cfg     model.ServerConfig
	logger  zerolog.Logger
	started time.Time
}

// New creates a server
func New(asker Asker, facts store.Reader, loader DataLoader, cfg model.ServerConfig, logger zerolog.Logger) *Server {
	return &Server{
		asker:   asker,
		facts:   facts,
		loader:  loader,
		cfg:     cfg,
		logger:  logger,
		started: time.Now(),
	}
}

// Router builds the chi router with all routes configured
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(s.cfg.RequestTimeout))
	}

	r.Get("/health", s.health)
	r.Post("/ask", s.ask)
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.listCategories)
		r.Get("/{name}", s.getCategory)
	})
	r.Post("/refresh-data", s.refreshData)
	r.Post("/initialize-db", s.initializeDB)

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return err
	}
	return nil
}
