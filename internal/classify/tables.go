package classify

import (
	"regexp"

	"github.com/ppiankov/rivalry/internal/model"
)

// CategoryKeywords maps a category key to its synonyms.
// Slice order is priority order: the first keyword found wins.
type CategoryKeywords struct {
	Category string
	Keywords []string
}

// DefaultCategoryKeywords is the reference category table
var DefaultCategoryKeywords = []CategoryKeywords{
	{Category: "goals", Keywords: []string{"goal", "goals", "score", "scored", "scoring", "scorer"}},
	{Category: "assists", Keywords: []string{"assist", "assists", "pass", "passes", "passing"}},
	{Category: "trophies", Keywords: []string{"trophy", "trophies", "title", "titles", "cup", "cups", "champion", "championship", "win", "won"}},
	{Category: "awards", Keywords: []string{"award", "awards", "ballon", "d'or", "golden", "boot", "player of the year"}},
	{Category: "international", Keywords: []string{"international", "country", "national", "nation", "world cup", "euro", "copa"}},
	{Category: "club", Keywords: []string{"club", "team", "barcelona", "real madrid", "manchester united", "juventus", "psg"}},
	{Category: "career", Keywords: []string{"career", "overall", "total", "statistic", "statistics"}},
	{Category: "hat_tricks", Keywords: []string{"hat trick", "hat-trick", "hattrick"}},
	{Category: "free_kicks", Keywords: []string{"free kick", "free-kick", "freekick"}},
	{Category: "penalties", Keywords: []string{"penalty", "penalties", "pen"}},
}

// DefaultComparisonPatterns signal an explicit comparison, checked in order
var DefaultComparisonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`who has (more|better|higher|greater|most|bigger)`),
	regexp.MustCompile(`who (has )?scored (more|most)`),
	regexp.MustCompile(`who won (more|most)`),
	regexp.MustCompile(`compare`),
	regexp.MustCompile(`comparison`),
	regexp.MustCompile(`difference between`),
	regexp.MustCompile(`vs`),
	regexp.MustCompile(`versus`),
}

// DirectQuestion overrides the whole intent when Phrase occurs in the question
type DirectQuestion struct {
	Phrase string
	Intent model.Intent
}

// DefaultDirectQuestions is checked after keyword scanning; first hit wins
var DefaultDirectQuestions = []DirectQuestion{
	{Phrase: "who has world cup", Intent: model.Intent{Category: "trophies", SpecificStat: "world_cup", Mode: model.ModeDirectQuestion}},
	{Phrase: "who won world cup", Intent: model.Intent{Category: "trophies", SpecificStat: "world_cup", Mode: model.ModeDirectQuestion}},
	{Phrase: "who has champions league", Intent: model.Intent{Category: "trophies", SpecificStat: "champions_league", Mode: model.ModeDirectQuestion}},
	{Phrase: "who has more goals", Intent: model.Intent{Category: "goals", Mode: model.ModeComparison}},
	{Phrase: "who has more trophies", Intent: model.Intent{Category: "trophies", Mode: model.ModeComparison}},
	{Phrase: "who has more assists", Intent: model.Intent{Category: "assists", Mode: model.ModeComparison}},
	{Phrase: "who has ballon d'or", Intent: model.Intent{Category: "awards", SpecificStat: "ballon_dor", Mode: model.ModeDirectQuestion}},
}

// Refinement narrows specific_stat (and sometimes category) after the
// category has been chosen. Refinements are mutually exclusive.
type Refinement struct {
	Name  string
	Apply func(text string, intent *model.Intent) bool
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// DefaultRefinements are evaluated in order; only the first that applies takes effect
var DefaultRefinements = []Refinement{
	{Name: "champions_league", Apply: setStat("champions_league", "champions league", "ucl", "european")},
	{Name: "world_cup", Apply: setStat("world_cup", "world cup")},
	{Name: "season", Apply: func(text string, intent *model.Intent) bool {
		if !containsAny(text, "season") {
			return false
		}
		year := yearPattern.FindString(text)
		if year == "" {
			return false
		}
		intent.SpecificStat = "season_" + year
		return true
	}},
	{Name: "la_liga", Apply: setStat("la_liga", "la liga", "laliga")},
	{Name: "premier_league", Apply: setStat("premier_league", "premier league", "epl")},
	{Name: "serie_a", Apply: setStat("serie_a", "serie a")},
	{Name: "ballon_dor", Apply: func(text string, intent *model.Intent) bool {
		if !containsAny(text, "ballon", "d'or") {
			return false
		}
		intent.Category = "awards"
		intent.SpecificStat = "ballon_dor"
		return true
	}},
	{Name: "free_kicks", Apply: setCategory("free_kicks", "free kick", "freekick", "free-kick")},
	{Name: "penalties", Apply: setCategory("penalties", "penalty", "penalties")},
	{Name: "hat_tricks", Apply: setCategory("hat_tricks", "hat trick", "hat-trick", "hattrick")},
}

func setStat(stat string, cues ...string) func(string, *model.Intent) bool {
	return func(text string, intent *model.Intent) bool {
		if !containsAny(text, cues...) {
			return false
		}
		intent.SpecificStat = stat
		return true
	}
}

func setCategory(category string, cues ...string) func(string, *model.Intent) bool {
	return func(text string, intent *model.Intent) bool {
		if !containsAny(text, cues...) {
			return false
		}
		intent.Category = category
		return true
	}
}
