// Package scrape pulls side-by-side stat comparisons out of fan-site HTML.
// The heuristics are loose on purpose: pages that do not match yield no
// stats and the caller falls back to seed data.
package scrape

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// NotAvailable stands in for a value the page did not provide
const NotAvailable = "N/A"

// ParsedStat is one stat row read from a page
type ParsedStat struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	ValueA      string `json:"value_a"`
	ValueB      string `json:"value_b"`
}

// SectionCategory maps heading keywords to a category key
type SectionCategory struct {
	Category string
	Keywords []string
}

// DefaultSectionCategories is checked in order; unmatched headings fall
// back to DefaultSectionCategory.
var DefaultSectionCategories = []SectionCategory{
	{Category: "goals", Keywords: []string{"goal", "score"}},
	{Category: "assists", Keywords: []string{"assist"}},
	{Category: "trophies", Keywords: []string{"trophy", "trophies", "title"}},
	{Category: "awards", Keywords: []string{"award", "ballon"}},
	{Category: "international", Keywords: []string{"international", "world cup"}},
	{Category: "club", Keywords: []string{"club", "barcelona", "madrid"}},
	{Category: "career", Keywords: []string{"career", "overall"}},
	{Category: "hat_tricks", Keywords: []string{"hat trick", "hat-trick"}},
	{Category: "free_kicks", Keywords: []string{"free kick", "freekick"}},
	{Category: "penalties", Keywords: []string{"penalty", "penalties"}},
}

// DefaultSectionCategory receives sections whose heading matches nothing
const DefaultSectionCategory = "career"

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	parenRe      = regexp.MustCompile(`\([^)]*\)`)
	digitRe      = regexp.MustCompile(`\d+`)
)

// Parser extracts stats. ClassHintsA and ClassHintsB are CSS class
// fragments that mark each subject's value cell.
type Parser struct {
	Sections    []SectionCategory
	ClassHintsA []string
	ClassHintsB []string
}

// NewParser returns a parser with the default tables for the default roster
func NewParser() *Parser {
	return &Parser{
		Sections:    DefaultSectionCategories,
		ClassHintsA: []string{"messi"},
		ClassHintsB: []string{"ronaldo", "cr7"},
	}
}

// Parse reads every stat row it can find. Rows repeated under nested
// sections are reported once.
func (p *Parser) Parse(htmlContent string) ([]ParsedStat, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var stats []ParsedStat
	seen := make(map[string]bool)
	for _, section := range findSections(doc) {
		for _, stat := range p.parseSection(section) {
			key := stat.Category + "\x00" + strings.ToLower(stat.Description)
			if seen[key] {
				continue
			}
			seen[key] = true
			stats = append(stats, stat)
		}
	}
	return stats, nil
}

// findSections prefers containers classed as stats or comparisons and
// falls back to the div around a goals/assists/trophies heading.
func findSections(doc *html.Node) []*html.Node {
	sections := findAll(doc, func(n *html.Node) bool {
		return isElement(n, "section", "div") && classContains(n, "stat", "comparison")
	})
	if len(sections) > 0 {
		return sections
	}

	headings := findAll(doc, func(n *html.Node) bool {
		if !isElement(n, "h1", "h2", "h3") {
			return false
		}
		text := strings.ToLower(textOf(n))
		return strings.Contains(text, "goals") || strings.Contains(text, "assists") || strings.Contains(text, "trophies")
	})
	for _, h := range headings {
		if parent := findParent(h, "div"); parent != nil {
			sections = append(sections, parent)
		}
	}
	return sections
}

func (p *Parser) parseSection(section *html.Node) []ParsedStat {
	heading := findFirst(section, func(n *html.Node) bool {
		return isElement(n, "h1", "h2", "h3", "h4")
	})
	if heading == nil {
		return nil
	}
	category := p.categoryFor(textOf(heading))

	items := findAll(section, func(n *html.Node) bool {
		return isElement(n, "div", "li") && classContains(n, "stat", "item")
	})
	if len(items) == 0 {
		items = findAll(section, func(n *html.Node) bool {
			return isElement(n, "tr", "div", "li")
		})
	}

	var stats []ParsedStat
	for _, item := range items {
		if stat, ok := p.parseItem(item); ok {
			stat.Category = category
			stats = append(stats, stat)
		}
	}
	return stats
}

func (p *Parser) categoryFor(heading string) string {
	text := strings.ToLower(heading)
	for _, sc := range p.Sections {
		for _, kw := range sc.Keywords {
			if strings.Contains(text, kw) {
				return sc.Category
			}
		}
	}
	return DefaultSectionCategory
}

func (p *Parser) parseItem(item *html.Node) (ParsedStat, bool) {
	descNode := findFirst(item, func(n *html.Node) bool {
		return isElement(n, "h3", "h4", "p", "th", "span")
	})
	if descNode == nil {
		return ParsedStat{}, false
	}
	description := CleanValue(textOf(descNode))
	if description == "" || description == NotAvailable {
		return ParsedStat{}, false
	}

	var a, b string
	if n := findFirst(item, p.valueCell(p.ClassHintsA)); n != nil {
		a = CleanValue(textOf(n))
	}
	if n := findFirst(item, p.valueCell(p.ClassHintsB)); n != nil {
		b = CleanValue(textOf(n))
	}

	if a == "" || b == "" {
		var numbers []string
		for _, n := range findAll(item, func(n *html.Node) bool {
			return isElement(n, "span", "div", "td", "p")
		}) {
			text := textOf(n)
			if digitRe.MatchString(text) {
				numbers = append(numbers, CleanValue(text))
			}
		}
		if len(numbers) >= 2 {
			a, b = numbers[0], numbers[1]
		}
	}

	if a == "" && b == "" {
		return ParsedStat{}, false
	}
	if a == "" {
		a = NotAvailable
	}
	if b == "" {
		b = NotAvailable
	}
	return ParsedStat{Description: description, ValueA: a, ValueB: b}, true
}

func (p *Parser) valueCell(hints []string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return isElement(n, "div", "span", "td") && classContains(n, hints...)
	}
}

// CleanValue collapses whitespace and drops parenthesised notes.
// Blank input becomes NotAvailable.
func CleanValue(value string) string {
	value = strings.TrimSpace(whitespaceRe.ReplaceAllString(value, " "))
	if value == "" {
		return NotAvailable
	}
	return strings.TrimSpace(parenRe.ReplaceAllString(value, ""))
}
