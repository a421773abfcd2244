package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kosciej/cabrillo-log/pkg/stats"
)

func testSummary() *stats.Summary {
	return &stats.Summary{
		Total: 3,
		Intervals: &stats.IntervalStats{
			MinMinutes: 1,
			MaxMinutes: 30,
			AvgMinutes: 15.5,
			Count:      2,
		},
		PerBand:      []stats.Count{{Name: "20m", Count: 2}, {Name: "40m", Count: 1}},
		PerContinent: []stats.Count{{Name: "EU", Count: 2}, {Name: "NA", Count: 1}},
		PerMode:      []stats.Count{{Name: "CW", Count: 3}},
		PerCQZone:    map[int]int{15: 2, 5: 1},
		PerCountryBand: []stats.CountryBand{
			{Item: "Poland", Count20m: 1, Count40m: 1, Total: 2},
			{Item: "United States", Count20m: 1, Total: 1},
		},
		TimeSeries: []stats.TimeSeriesPoint{{Timestamp: time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC), Count: 3}},
		PerHourBand: []stats.HourBand{
			{Hour: 12, Bands: map[string]int{"20m": 2, "40m": 1}, Total: 3},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown("SP5TLS CQ-WW-CW", testSummary())

	assert.True(t, strings.HasPrefix(md, "# SP5TLS CQ-WW-CW\n"))
	assert.Contains(t, md, "Total QSOs: **3**")
	assert.Contains(t, md, "| 1.0 | 30.0 | 15.5 | 2 |")
	assert.Contains(t, md, "| Country | 160m | 80m | 40m | 20m | 15m | 10m | 6m | Total |")
	assert.Contains(t, md, "| Poland | 0 | 0 | 1 | 1 | 0 | 0 | 0 | 2 |")
	assert.Contains(t, md, "| Hour (UTC) | 40m | 20m | Total |")
	assert.Contains(t, md, "| 12 | 1 | 2 | 3 |")

	assert.Less(t, strings.Index(md, "| 5 | 1 |"), strings.Index(md, "| 15 | 2 |"))
}

func TestMarkdown_Empty(t *testing.T) {
	md := Markdown("empty", &stats.Summary{})
	assert.Contains(t, md, "Not enough QSOs.")
	assert.Contains(t, md, "No data.")
}

func TestMarkdown_EscapesPipes(t *testing.T) {
	sum := &stats.Summary{PerMode: []stats.Count{{Name: "A|B", Count: 1}}}
	assert.Contains(t, Markdown("x", sum), `| A\|B | 1 |`)
}

func TestHTML(t *testing.T) {
	out, err := HTML("<Report>", testSummary())
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, "<title>&lt;Report&gt;</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<td>Poland</td>")
	assert.Contains(t, page, "<strong>3</strong>")
}
