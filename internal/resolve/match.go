package resolve

import (
	"strings"

	"github.com/ppiankov/rivalry/internal/model"
)

// MatchStage names the fallback stage that resolved a category
type MatchStage string

const (
	StageExact     MatchStage = "exact"
	StageFuzzy     MatchStage = "fuzzy"
	StageSubstring MatchStage = "substring"
	StageToken     MatchStage = "token"
	StageNone      MatchStage = "none"
)

// CategoryMatcher is one stage of the category lookup cascade
type CategoryMatcher struct {
	Stage MatchStage
	Match func(query string, categories []model.Category) (model.Category, bool)
}

// DefaultCategoryMatchers is the lookup cascade, tried in order
var DefaultCategoryMatchers = []CategoryMatcher{
	{Stage: StageExact, Match: matchExact},
	{Stage: StageFuzzy, Match: matchFuzzy},
	{Stage: StageSubstring, Match: matchSubstring},
	{Stage: StageToken, Match: matchToken},
}

// MatchCategory resolves a classifier category against the known categories.
// Each stage runs only if every earlier stage found nothing.
func MatchCategory(query string, categories []model.Category) (model.Category, MatchStage, bool) {
	for _, m := range DefaultCategoryMatchers {
		if cat, ok := m.Match(query, categories); ok {
			return cat, m.Stage, true
		}
	}
	return model.Category{}, StageNone, false
}

func matchExact(query string, categories []model.Category) (model.Category, bool) {
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, query) {
			return cat, true
		}
	}
	return model.Category{}, false
}

func matchFuzzy(query string, categories []model.Category) (model.Category, bool) {
	if len(categories) == 0 {
		return model.Category{}, false
	}

	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.Name
	}

	matches := CloseMatches(strings.ToLower(query), names, DefaultMaxCandidates, DefaultCutoff)
	if len(matches) == 0 {
		return model.Category{}, false
	}

	for _, cat := range categories {
		if cat.Name == matches[0] {
			return cat, true
		}
	}
	return model.Category{}, false
}

func matchSubstring(query string, categories []model.Category) (model.Category, bool) {
	q := strings.ToLower(query)
	for _, cat := range categories {
		name := strings.ToLower(cat.Name)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return cat, true
		}
	}
	return model.Category{}, false
}

// matchToken splits category keys on "_" and matches any token longer than
// two characters found inside the query.
func matchToken(query string, categories []model.Category) (model.Category, bool) {
	q := strings.ToLower(query)
	for _, cat := range categories {
		for _, token := range strings.Split(strings.ToLower(cat.Name), "_") {
			if len([]rune(token)) > 2 && strings.Contains(q, token) {
				return cat, true
			}
		}
	}
	return model.Category{}, false
}
