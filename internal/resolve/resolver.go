// Package resolve turns a classified intent into an answer by looking up
// categories and stat records in a read-only fact store.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/rivalry/internal/model"
	"github.com/rs/zerolog"
)

// FactStore is the read-only view of the fact table the resolver needs.
// Both methods must return records in a stable order.
type FactStore interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListStats(ctx context.Context, categoryID int64) ([]model.StatRecord, error)
}

// Resolver answers intents. It keeps no mutable state.
type Resolver struct {
	store  FactStore
	roster model.Roster
	topics []DirectTopic
	logger zerolog.Logger
}

// NewResolver creates a resolver over the given store
func NewResolver(store FactStore, roster model.Roster, logger zerolog.Logger) *Resolver {
	return &Resolver{
		store:  store,
		roster: roster,
		topics: DefaultDirectTopics,
		logger: logger,
	}
}

// Resolve runs the resolution cascade. Store failures are returned as
// errors; an unclassified or unknown category is an answer, not an error.
func (r *Resolver) Resolve(ctx context.Context, intent model.Intent) (*model.Answer, error) {
	if !intent.Classified() {
		return &model.Answer{
			Answer: fmt.Sprintf(clarificationText, r.roster.A.Short, r.roster.B.Short),
			Type:   model.KindClarification,
		}, nil
	}

	categories, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	category, stage, ok := MatchCategory(intent.Category, categories)
	if !ok {
		return &model.Answer{
			Answer: fmt.Sprintf("I don't have information about %s. I can provide details about goals, assists, trophies, and other statistics.", intent.Category),
			Type:   model.KindNotFound,
		}, nil
	}

	r.logger.Debug().
		Str("query", intent.Category).
		Str("category", category.Name).
		Str("stage", string(stage)).
		Msg("category matched")

	stats, err := r.store.ListStats(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("list stats for %s: %w", category.Name, err)
	}
	if len(stats) == 0 {
		return &model.Answer{
			Answer: fmt.Sprintf("I don't have specific statistics about %s right now.", category.DisplayName),
			Type:   model.KindNotFound,
		}, nil
	}

	if intent.Mode == model.ModeDirectQuestion && intent.SpecificStat != "" {
		if answer, ok := r.directAnswer(intent.SpecificStat, stats); ok {
			return answer, nil
		}
	}

	if side, ok := intent.Mode.Side(); ok {
		subject := r.roster.Subject(side)
		return &model.Answer{
			Answer:   singlePlayerText(subject, side, category.DisplayName, stats),
			Type:     model.KindSinglePlayer,
			Data:     stats,
			Player:   subject.Key,
			Category: category.DisplayName,
		}, nil
	}

	if intent.SpecificStat != "" {
		if rec, ok := findStat(stats, intent.SpecificStat); ok {
			return &model.Answer{
				Answer: fmt.Sprintf("For %s: %s", rec.Description, compareValues(r.roster, rec)),
				Type:   model.KindSpecificComparison,
				Data: model.StatComparison{
					Description: rec.Description,
					ValueA:      rec.ValueA,
					ValueB:      rec.ValueB,
				},
				Category: category.DisplayName,
			}, nil
		}
	}

	return &model.Answer{
		Answer:   categoryComparisonText(r.roster, category.DisplayName, stats),
		Type:     model.KindCategoryComparison,
		Data:     stats,
		Category: category.DisplayName,
	}, nil
}

// directAnswer renders the hand-authored sentence when the matching record
// concerns one of the known direct topics.
func (r *Resolver) directAnswer(stat string, stats []model.StatRecord) (*model.Answer, bool) {
	rec, ok := findStat(stats, stat)
	if !ok {
		return nil, false
	}

	cue := normalizeStat(stat)
	for _, topic := range r.topics {
		if strings.Contains(cue, topic.Cue) {
			return &model.Answer{
				Answer: topic.Render(r.roster, rec),
				Type:   model.KindDirectAnswer,
			}, true
		}
	}
	return nil, false
}

// findStat returns the first record, in store order, whose description
// contains the stat hint.
func findStat(stats []model.StatRecord, stat string) (model.StatRecord, bool) {
	needle := normalizeStat(stat)
	if needle == "" {
		return model.StatRecord{}, false
	}
	for _, rec := range stats {
		if strings.Contains(normalizeStat(rec.Description), needle) {
			return rec, true
		}
	}
	return model.StatRecord{}, false
}
