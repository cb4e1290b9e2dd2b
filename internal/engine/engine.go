// Package engine wires the classifier and the resolver into a single
// question-answering call.
package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ppiankov/rivalry/internal/classify"
	"github.com/ppiankov/rivalry/internal/model"
	"github.com/ppiankov/rivalry/internal/resolve"
	"github.com/rs/zerolog"
)

// ErrEmptyQuestion is returned for blank questions
var ErrEmptyQuestion = errors.New("no question provided")

// Engine answers questions. It is safe for concurrent use.
type Engine struct {
	classifier *classify.Classifier
	resolver   *resolve.Resolver
	logger     zerolog.Logger
}

// New creates an engine over the given fact store
func New(store resolve.FactStore, roster model.Roster, logger zerolog.Logger) *Engine {
	return &Engine{
		classifier: classify.NewClassifier(roster, classify.WithLogger(logger)),
		resolver:   resolve.NewResolver(store, roster, logger),
		logger:     logger,
	}
}

// Ask classifies and resolves one question. The returned answer echoes
// the question as received.
func (e *Engine) Ask(ctx context.Context, question string) (*model.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	start := time.Now()
	intent := e.classifier.Classify(question)

	answer, err := e.resolver.Resolve(ctx, intent)
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("category", intent.Category).
			Msg("resolve failed")
		return nil, err
	}
	answer.Question = question

	e.logger.Info().
		Str("category", intent.Category).
		Str("stat", intent.SpecificStat).
		Str("mode", string(intent.Mode)).
		Str("type", string(answer.Type)).
		Dur("latency", time.Since(start)).
		Msg("answered")

	return answer, nil
}

// Classify exposes the intent for a question without touching the store
func (e *Engine) Classify(question string) model.Intent {
	return e.classifier.Classify(question)
}
