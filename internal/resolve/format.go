package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/rivalry/internal/model"
)

const clarificationText = "I can provide information about %s and %s on goals, assists, trophies, awards, and more. What would you like to know?"

// DirectTopic is a hand-authored answer for a well-known direct question
type DirectTopic struct {
	Cue    string // Normalised text the specific stat must contain
	Render func(r model.Roster, rec model.StatRecord) string
}

// DefaultDirectTopics cover the World Cup, Champions League and Ballon d'Or
var DefaultDirectTopics = []DirectTopic{
	{
		Cue: "world cup",
		Render: func(r model.Roster, _ model.StatRecord) string {
			return fmt.Sprintf("%s has won the World Cup (2022 with Argentina). %s has not won a World Cup.", r.A.Name, r.B.Name)
		},
	},
	{
		Cue: "champions league",
		Render: func(r model.Roster, rec model.StatRecord) string {
			return fmt.Sprintf("Both have won Champions League titles. %s has %s Champions League titles, while %s has %s.",
				r.A.Short, rec.ValueA, r.B.Short, rec.ValueB)
		},
	},
	{
		Cue: "ballon",
		Render: func(r model.Roster, rec model.StatRecord) string {
			return fmt.Sprintf("%s has won %s Ballon d'Or awards. %s has won %s Ballon d'Or awards.",
				r.A.Name, rec.ValueA, r.B.Name, rec.ValueB)
		},
	},
}

// normalizeStat makes stat hints and descriptions comparable:
// "ballon_dor" and "Ballon d'Or" both become "ballon dor".
func normalizeStat(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ", "'", "", "\u2019", "").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// parseCount accepts only unsigned base-10 digit strings
func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// compareValues renders the specific-stat sentence body
func compareValues(r model.Roster, rec model.StatRecord) string {
	a, okA := parseCount(rec.ValueA)
	b, okB := parseCount(rec.ValueB)
	if !okA || !okB {
		return fmt.Sprintf("%s: %s, %s: %s", r.A.Short, rec.ValueA, r.B.Short, rec.ValueB)
	}

	switch {
	case a > b:
		return fmt.Sprintf("%s leads with %d compared to %s's %d (a margin of %d).", r.A.Short, a, r.B.Short, b, a-b)
	case b > a:
		return fmt.Sprintf("%s leads with %d compared to %s's %d (a margin of %d).", r.B.Short, b, r.A.Short, a, b-a)
	default:
		return fmt.Sprintf("Both %s and %s have %d.", r.A.Short, r.B.Short, a)
	}
}

func singlePlayerText(subject model.Subject, side model.Side, display string, stats []model.StatRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s's %s Statistics:\n\n", subject.Name, display)
	for _, stat := range stats {
		if stat.Description == "" {
			continue
		}
		fmt.Fprintf(&b, "• %s: %s\n", stat.Description, stat.Value(side))
	}
	return strings.TrimSpace(b.String())
}

func categoryComparisonText(r model.Roster, display string, stats []model.StatRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Comparing %s between %s and %s:\n\n", display, r.A.Short, r.B.Short)
	for _, stat := range stats {
		if stat.Description == "" {
			continue
		}
		fmt.Fprintf(&b, "• %s: %s (%s) vs %s (%s)\n", stat.Description, r.A.Short, stat.ValueA, r.B.Short, stat.ValueB)
	}
	return strings.TrimSpace(b.String())
}
