package resolve

import (
	"strings"
	"testing"

	"github.com/ppiankov/rivalry/internal/model"
	"github.com/stretchr/testify/assert"
)

var testCategories = []model.Category{
	{ID: 1, Name: "goals", DisplayName: "Goals"},
	{ID: 2, Name: "assists", DisplayName: "Assists"},
	{ID: 3, Name: "trophies", DisplayName: "Trophies"},
	{ID: 4, Name: "awards", DisplayName: "Awards"},
	{ID: 5, Name: "international", DisplayName: "International"},
	{ID: 6, Name: "club", DisplayName: "Club"},
	{ID: 7, Name: "free_kicks", DisplayName: "Free Kicks"},
	{ID: 8, Name: "hat_tricks", DisplayName: "Hat Tricks"},
	{ID: 9, Name: "records", DisplayName: "Records"},
	{ID: 10, Name: "penalties", DisplayName: "Penalties"},
}

func TestMatchCategory(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		categories []model.Category
		want       string
		stage      MatchStage
	}{
		{"exact", "goals", testCategories, "goals", StageExact},
		{"exact ignores case", "Hat_Tricks", testCategories, "hat_tricks", StageExact},
		{"fuzzy singular", "goal", testCategories, "goals", StageFuzzy},
		{"fuzzy trophy", "trophy", testCategories, "trophies", StageFuzzy},
		{"fuzzy without separator", "hattricks", testCategories, "hat_tricks", StageFuzzy},
		{
			name:       "substring when ratio is below cutoff",
			query:      strings.Repeat("z", 24) + "club",
			categories: []model.Category{{ID: 6, Name: "club"}},
			want:       "club",
			stage:      StageSubstring,
		},
		{
			name:       "token when no substring",
			query:      "kicks" + strings.Repeat("x", 25),
			categories: []model.Category{{ID: 7, Name: "free_kicks"}},
			want:       "free_kicks",
			stage:      StageToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, stage, ok := MatchCategory(tt.query, tt.categories)
			assert.True(t, ok)
			assert.Equal(t, tt.want, cat.Name)
			assert.Equal(t, tt.stage, stage)
		})
	}
}

func TestMatchCategory_NoMatch(t *testing.T) {
	_, stage, ok := MatchCategory("zzzz", testCategories)
	assert.False(t, ok)
	assert.Equal(t, StageNone, stage)

	_, _, ok = MatchCategory("goals", nil)
	assert.False(t, ok)
}

func TestMatchToken_SkipsShortTokens(t *testing.T) {
	categories := []model.Category{{ID: 1, Name: "xy_zz"}}

	_, ok := matchToken(strings.Repeat("q", 27)+"xy", categories)
	assert.False(t, ok)

	_, _, ok = MatchCategory(strings.Repeat("q", 27)+"xy", categories)
	assert.False(t, ok)
}

func TestCloseMatches(t *testing.T) {
	assert.Equal(t, []string{"ab", "ba"}, CloseMatches("ab", []string{"ba", "ab"}, 3, 0.3))

	// Equal scores order by candidate, descending.
	assert.Equal(t, []string{"ac", "ab"}, CloseMatches("a", []string{"ab", "ac"}, 3, 0.3))
	assert.Equal(t, []string{"ac"}, CloseMatches("a", []string{"ab", "ac"}, 1, 0.3))

	assert.Empty(t, CloseMatches("zzzz", []string{"goals", "assists"}, 3, 0.3))
	assert.Nil(t, CloseMatches("goal", []string{"goals"}, 0, 0.3))
	assert.Nil(t, CloseMatches("goal", []string{"goals"}, 3, 1.5))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("goals", "goals"), 1e-9)
	assert.InDelta(t, 8.0/9.0, Similarity("goal", "goals"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("zzzz", "goals"), 1e-9)
}
