package store

import (
	"time"

	"github.com/ppiankov/rivalry/internal/model"
)

// SeedDateLayout is the format of StatRecord.LastUpdated
const SeedDateLayout = "2006-01-02"

// SeedCategories are the ten fixed categories
var SeedCategories = []model.Category{
	{ID: 1, Name: "goals", DisplayName: "Goals"},
	{ID: 2, Name: "assists", DisplayName: "Assists"},
	{ID: 3, Name: "trophies", DisplayName: "Trophies"},
	{ID: 4, Name: "awards", DisplayName: "Awards"},
	{ID: 5, Name: "international", DisplayName: "International Performance"},
	{ID: 6, Name: "club", DisplayName: "Club Performance"},
	{ID: 7, Name: "career", DisplayName: "Career Statistics"},
	{ID: 8, Name: "hat_tricks", DisplayName: "Hat Tricks"},
	{ID: 9, Name: "free_kicks", DisplayName: "Free Kicks"},
	{ID: 10, Name: "penalties", DisplayName: "Penalties"},
}

var seedStats = []model.StatRecord{
	// Goals
	{ID: 1, CategoryID: 1, Description: "Total Career Goals", ValueA: "821", ValueB: "837"},
	{ID: 2, CategoryID: 1, Description: "Club Goals", ValueA: "701", ValueB: "713"},
	{ID: 3, CategoryID: 1, Description: "International Goals", ValueA: "120", ValueB: "124"},
	{ID: 4, CategoryID: 1, Description: "Champions League Goals", ValueA: "129", ValueB: "140"},

	// Assists
	{ID: 5, CategoryID: 2, Description: "Total Career Assists", ValueA: "338", ValueB: "258"},
	{ID: 6, CategoryID: 2, Description: "Club Assists", ValueA: "305", ValueB: "226"},
	{ID: 7, CategoryID: 2, Description: "International Assists", ValueA: "33", ValueB: "32"},

	// Trophies
	{ID: 8, CategoryID: 3, Description: "Total Major Trophies", ValueA: "42", ValueB: "34"},
	{ID: 9, CategoryID: 3, Description: "Champions League Titles", ValueA: "4", ValueB: "5"},
	{ID: 10, CategoryID: 3, Description: "League Titles", ValueA: "12", ValueB: "7"},
	{ID: 11, CategoryID: 3, Description: "World Cup Titles", ValueA: "1", ValueB: "0"},
	{ID: 12, CategoryID: 3, Description: "Copa America Titles", ValueA: "1", ValueB: "0"},
	{ID: 13, CategoryID: 3, Description: "European Championship Titles", ValueA: "0", ValueB: "1"},

	// Awards
	{ID: 14, CategoryID: 4, Description: "Ballon d'Or", ValueA: "8", ValueB: "5"},
	{ID: 15, CategoryID: 4, Description: "FIFA Best Player", ValueA: "6", ValueB: "5"},
	{ID: 16, CategoryID: 4, Description: "Golden Boot", ValueA: "6", ValueB: "4"},
	{ID: 17, CategoryID: 4, Description: "World Cup Golden Ball", ValueA: "2", ValueB: "0"},

	// International Performance
	{ID: 18, CategoryID: 5, Description: "World Cup Goals", ValueA: "13", ValueB: "8"},
	{ID: 19, CategoryID: 5, Description: "World Cup Appearances", ValueA: "5", ValueB: "5"},
	{ID: 20, CategoryID: 5, Description: "Major International Trophies", ValueA: "2", ValueB: "1"},
	{ID: 21, CategoryID: 5, Description: "International Goals", ValueA: "120", ValueB: "124"},
	{ID: 22, CategoryID: 5, Description: "International Assists", ValueA: "33", ValueB: "32"},

	// Club Performance
	{ID: 23, CategoryID: 6, Description: "Champions League Goals", ValueA: "129", ValueB: "140"},
	{ID: 24, CategoryID: 6, Description: "Champions League Assists", ValueA: "40", ValueB: "42"},
	{ID: 25, CategoryID: 6, Description: "League Goals", ValueA: "496", ValueB: "498"},
	{ID: 26, CategoryID: 6, Description: "League Assists", ValueA: "224", ValueB: "153"},

	// Career Statistics
	{ID: 27, CategoryID: 7, Description: "Games Played", ValueA: "1050", ValueB: "1178"},
	{ID: 28, CategoryID: 7, Description: "Goals per Game", ValueA: "0.78", ValueB: "0.71"},
	{ID: 29, CategoryID: 7, Description: "Assists per Game", ValueA: "0.32", ValueB: "0.22"},
	{ID: 30, CategoryID: 7, Description: "Career Hat-tricks", ValueA: "56", ValueB: "61"},

	// Hat Tricks
	{ID: 31, CategoryID: 8, Description: "Career Hat Tricks", ValueA: "56", ValueB: "61"},
	{ID: 32, CategoryID: 8, Description: "International Hat Tricks", ValueA: "9", ValueB: "10"},
	{ID: 33, CategoryID: 8, Description: "Club Hat Tricks", ValueA: "47", ValueB: "51"},

	// Free Kicks
	{ID: 34, CategoryID: 9, Description: "Free Kick Goals", ValueA: "65", ValueB: "58"},
	{ID: 35, CategoryID: 9, Description: "Club Free Kicks", ValueA: "58", ValueB: "53"},
	{ID: 36, CategoryID: 9, Description: "International Free Kicks", ValueA: "7", ValueB: "5"},

	// Penalties
	{ID: 37, CategoryID: 10, Description: "Penalty Goals", ValueA: "110", ValueB: "142"},
	{ID: 38, CategoryID: 10, Description: "Penalty Conversion Rate", ValueA: "78%", ValueB: "84%"},
	{ID: 39, CategoryID: 10, Description: "Missed Penalties", ValueA: "31", ValueB: "29"},
}

// Seed returns the fallback fact table stamped with the given day
func Seed(day time.Time) ([]model.Category, []model.StatRecord) {
	categories := make([]model.Category, len(SeedCategories))
	copy(categories, SeedCategories)

	stamp := day.Format(SeedDateLayout)
	stats := make([]model.StatRecord, len(seedStats))
	for i, s := range seedStats {
		s.LastUpdated = stamp
		stats[i] = s
	}
	return categories, stats
}
