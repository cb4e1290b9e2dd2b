// Package classify maps free-text questions to an intent triple using
// ordered keyword and pattern tables. Every table is scanned in declaration
// order and the first hit wins.
package classify

import (
	"regexp"
	"strings"

	"github.com/ppiankov/rivalry/internal/model"
	"github.com/rs/zerolog"
)

// Classifier turns a question into (category, specific stat, comparison mode).
// It holds only immutable tables and is safe for concurrent use.
type Classifier struct {
	roster      model.Roster
	categories  []CategoryKeywords
	comparisons []*regexp.Regexp
	direct      []DirectQuestion
	refinements []Refinement
	logger      zerolog.Logger
}

// Option customizes a Classifier
type Option func(*Classifier)

// WithLogger logs each classification at debug level
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// WithCategoryKeywords replaces the category table
func WithCategoryKeywords(table []CategoryKeywords) Option {
	return func(c *Classifier) {
		c.categories = table
	}
}

// WithDirectQuestions replaces the direct-question overrides
func WithDirectQuestions(table []DirectQuestion) Option {
	return func(c *Classifier) {
		c.direct = table
	}
}

// NewClassifier creates a classifier for the given roster using the default tables
func NewClassifier(roster model.Roster, opts ...Option) *Classifier {
	c := &Classifier{
		roster:      roster,
		categories:  DefaultCategoryKeywords,
		comparisons: DefaultComparisonPatterns,
		direct:      DefaultDirectQuestions,
		refinements: DefaultRefinements,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify never fails. An unrecognised question yields an empty category
// with ModeGeneral.
func (c *Classifier) Classify(question string) model.Intent {
	text := strings.ToLower(question)

	intent := model.Intent{Mode: c.detectMode(text)}
	intent.Category = c.detectCategory(text)

	if dq, ok := firstMatch(c.direct, func(d DirectQuestion) bool {
		return strings.Contains(text, d.Phrase)
	}); ok {
		intent = dq.Intent
	}

	refinement, _ := firstMatch(c.refinements, func(r Refinement) bool {
		return r.Apply(text, &intent)
	})

	c.logger.Debug().
		Str("category", intent.Category).
		Str("specific_stat", intent.SpecificStat).
		Str("mode", string(intent.Mode)).
		Str("refinement", refinement.Name).
		Msg("question classified")

	return intent
}

// detectMode applies the single-subject rule first and the comparison
// patterns only when it does not fire.
func (c *Classifier) detectMode(text string) model.ComparisonMode {
	mentionsA := containsAny(text, c.roster.A.Aliases...)
	mentionsB := containsAny(text, c.roster.B.Aliases...)

	switch {
	case mentionsA && !mentionsB:
		return model.ModeSubjectAOnly
	case mentionsB && !mentionsA:
		return model.ModeSubjectBOnly
	}

	if _, ok := firstMatch(c.comparisons, func(p *regexp.Regexp) bool {
		return p.MatchString(text)
	}); ok {
		return model.ModeComparison
	}
	return model.ModeGeneral
}

// detectCategory returns the category of the first keyword found, scanning
// categories and then keywords in declaration order.
func (c *Classifier) detectCategory(text string) string {
	entry, ok := firstMatch(c.categories, func(ck CategoryKeywords) bool {
		return containsAny(text, ck.Keywords...)
	})
	if !ok {
		return ""
	}
	return entry.Category
}

// MatchedKeyword reports which keyword selected the category, for diagnostics
func (c *Classifier) MatchedKeyword(question string) (category, keyword string) {
	text := strings.ToLower(question)
	for _, ck := range c.categories {
		if kw, ok := firstMatch(ck.Keywords, func(k string) bool {
			return strings.Contains(text, k)
		}); ok {
			return ck.Category, kw
		}
	}
	return "", ""
}

// firstMatch returns the first element satisfying pred
func firstMatch[T any](items []T, pred func(T) bool) (T, bool) {
	for _, item := range items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func containsAny(text string, needles ...string) bool {
	_, ok := firstMatch(needles, func(n string) bool {
		return n != "" && strings.Contains(text, n)
	})
	return ok
}
