package resolve

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

// Default fuzzy-match parameters for category lookup
const (
	DefaultMaxCandidates = 3
	DefaultCutoff        = 0.3
)

type scoredCandidate struct {
	score float64
	word  string
}

// CloseMatches returns up to n candidates whose similarity ratio with word
// is at least cutoff, best first. Ties are ordered by the candidate string,
// descending, so the result is deterministic.
func CloseMatches(word string, candidates []string, n int, cutoff float64) []string {
	if n <= 0 || cutoff < 0 || cutoff > 1 {
		return nil
	}

	target := splitChars(word)
	matcher := difflib.NewMatcher(nil, target)

	var scored []scoredCandidate
	for _, candidate := range candidates {
		matcher.SetSeq1(splitChars(candidate))
		if matcher.RealQuickRatio() < cutoff || matcher.QuickRatio() < cutoff {
			continue
		}
		if ratio := matcher.Ratio(); ratio >= cutoff {
			scored = append(scored, scoredCandidate{score: ratio, word: candidate})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].word > scored[j].word
	})

	if len(scored) > n {
		scored = scored[:n]
	}

	matches := make([]string, len(scored))
	for i, s := range scored {
		matches[i] = s.word
	}
	return matches
}

// Similarity is the difflib ratio between two strings
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(splitChars(a), splitChars(b)).Ratio()
}

// splitChars turns a string into one element per rune, the unit difflib compares
func splitChars(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
