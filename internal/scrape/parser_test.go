package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ClassMarkedValues(t *testing.T) {
	page := `<html><body>
<section class="stats-comparison">
  <h2>Goals</h2>
  <div class="stat-row">
    <span class="label">Total Goals</span>
    <div class="messi-value">850 (all comps)</div>
    <div class="ronaldo-value">900</div>
  </div>
  <div class="stat-row">
    <span class="label">Penalty   Goals</span>
    <div class="messi-value"></div>
    <div class="cr7-value">160</div>
  </div>
</section>
</body></html>`

	stats, err := NewParser().Parse(page)
	require.NoError(t, err)
	assert.Equal(t, []ParsedStat{
		{Category: "goals", Description: "Total Goals", ValueA: "850", ValueB: "900"},
		{Category: "goals", Description: "Penalty Goals", ValueA: "N/A", ValueB: "160"},
	}, stats)
}

func TestParse_HeadingFallbackWithNumericCells(t *testing.T) {
	page := `<html><body>
<div id="main">
  <h2>Career Trophies</h2>
  <table>
    <tr><th>League Titles</th><td>12</td><td>7</td></tr>
    <tr><th>Ballon d'Or</th><td>8</td><td>5</td></tr>
  </table>
</div>
</body></html>`

	stats, err := NewParser().Parse(page)
	require.NoError(t, err)
	assert.Equal(t, []ParsedStat{
		{Category: "trophies", Description: "League Titles", ValueA: "12", ValueB: "7"},
		{Category: "trophies", Description: "Ballon d'Or", ValueA: "8", ValueB: "5"},
	}, stats)
}

func TestParse_NestedSectionsReportRowsOnce(t *testing.T) {
	page := `<div class="comparison">
  <h2>Assists</h2>
  <div class="stats">
    <h3>Assists</h3>
    <li class="item"><p>Total Assists</p><span class="messi">338</span><span class="ronaldo">258</span></li>
  </div>
</div>`

	stats, err := NewParser().Parse(page)
	require.NoError(t, err)

	count := 0
	for _, s := range stats {
		assert.Equal(t, "assists", s.Category)
		if s.Description == "Total Assists" {
			count++
			assert.Equal(t, "338", s.ValueA)
			assert.Equal(t, "258", s.ValueB)
		}
	}
	assert.Equal(t, 1, count)
}

func TestParse_NoStats(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{"empty", ""},
		{"plain page", `<html><body><h1>Welcome</h1><p>Nothing to see.</p></body></html>`},
		{"section without heading", `<div class="stats"><li class="item"><p>Goals</p><span>1</span><span>2</span></li></div>`},
		{"single number", `<div class="stats"><h2>Goals</h2><li class="item"><p>Goals</p><span>1</span></li></div>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := NewParser().Parse(tt.page)
			require.NoError(t, err)
			assert.Empty(t, stats)
		})
	}
}

func TestParse_UnknownHeadingDefaultsToCareer(t *testing.T) {
	page := `<div class="stat-block"><h3>Minutes</h3>
<li class="stat-item"><span>Minutes Played</span><span class="messi">70000</span><span class="ronaldo">80000</span></li></div>`

	stats, err := NewParser().Parse(page)
	require.NoError(t, err)
	require.NotEmpty(t, stats)
	assert.Equal(t, "career", stats[0].Category)
}

func TestCategoryFor(t *testing.T) {
	p := NewParser()
	tests := map[string]string{
		"Who Scored More?":      "goals",
		"Assist Leaders":        "assists",
		"Major Titles":          "trophies",
		"Ballon d'Or Race":      "awards",
		"World Cup Record":      "international",
		"At Real Madrid":        "club",
		"Overall":               "career",
		"Hat-trick Count":       "hat_tricks",
		"Freekick Specialists":  "free_kicks",
		"Penalties Taken":       "penalties",
		"Something else":        "career",
		"International Goals":   "goals",
		"Club Trophies and Cups": "trophies",
	}
	for heading, want := range tests {
		assert.Equal(t, want, p.categoryFor(heading), heading)
	}
}

func TestCleanValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "N/A"},
		{"   \n\t", "N/A"},
		{"821", "821"},
		{" 78% ", "78%"},
		{"672 goals", "672 goals"},
		{"850 (all competitions)", "850"},
		{"Total  Career\nGoals", "Total Career Goals"},
		{"(note)", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanValue(tt.in))
		})
	}
}
