// Package report renders log statistics as Markdown and HTML.
package report

import (
	"bytes"
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/kosciej/cabrillo-log/pkg/stats"
)

var countryBands = []string{"160m", "80m", "40m", "20m", "15m", "10m", "6m"}

// Markdown renders a statistics summary as a Markdown document.
func Markdown(title string, sum *stats.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Total QSOs: **%d**\n\n", sum.Total)

	b.WriteString("## QSO intervals\n\n")
	if sum.Intervals == nil {
		b.WriteString("Not enough QSOs.\n\n")
	} else {
		writeTable(&b, []string{"Min (min)", "Max (min)", "Avg (min)", "Gaps"}, [][]string{{
			formatFloat(sum.Intervals.MinMinutes),
			formatFloat(sum.Intervals.MaxMinutes),
			formatFloat(sum.Intervals.AvgMinutes),
			strconv.Itoa(sum.Intervals.Count),
		}})
	}

	writeCounts(&b, "QSOs per band", "Band", sum.PerBand)
	writeCounts(&b, "QSOs per continent", "Continent", sum.PerContinent)
	writeCounts(&b, "QSOs per mode", "Mode", sum.PerMode)

	b.WriteString("## QSOs per country and band\n\n")
	rows := make([][]string, 0, len(sum.PerCountryBand))
	for _, r := range sum.PerCountryBand {
		rows = append(rows, []string{
			r.Item,
			strconv.Itoa(r.Count160m),
			strconv.Itoa(r.Count80m),
			strconv.Itoa(r.Count40m),
			strconv.Itoa(r.Count20m),
			strconv.Itoa(r.Count15m),
			strconv.Itoa(r.Count10m),
			strconv.Itoa(r.Count6m),
			strconv.Itoa(r.Total),
		})
	}
	writeTable(&b, append(append([]string{"Country"}, countryBands...), "Total"), rows)

	b.WriteString("## QSOs per CQ zone\n\n")
	zones := make([]int, 0, len(sum.PerCQZone))
	for z := range sum.PerCQZone {
		zones = append(zones, z)
	}
	sort.Ints(zones)
	rows = rows[:0]
	for _, z := range zones {
		rows = append(rows, []string{strconv.Itoa(z), strconv.Itoa(sum.PerCQZone[z])})
	}
	writeTable(&b, []string{"Zone", "QSOs"}, rows)

	b.WriteString("## Hourly activity\n\n")
	bands := hourBands(sum.PerHourBand)
	rows = rows[:0]
	for _, h := range sum.PerHourBand {
		row := []string{fmt.Sprintf("%02d", h.Hour)}
		for _, band := range bands {
			row = append(row, strconv.Itoa(h.Bands[band]))
		}
		rows = append(rows, append(row, strconv.Itoa(h.Total)))
	}
	writeTable(&b, append(append([]string{"Hour (UTC)"}, bands...), "Total"), rows)

	return b.String()
}

// hourBands lists the bands present in the hourly table in frequency order
func hourBands(hours []stats.HourBand) []string {
	present := map[string]bool{}
	for _, h := range hours {
		for band := range h.Bands {
			present[band] = true
		}
	}

	var out []string
	for _, band := range append(stats.Bands(), stats.UnknownBand) {
		if present[band] {
			out = append(out, band)
		}
	}
	return out
}

func writeCounts(b *strings.Builder, heading, key string, counts []stats.Count) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Count)})
	}
	writeTable(b, []string{key, "QSOs"}, rows)
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	if len(rows) == 0 {
		b.WriteString("No data.\n\n")
		return
	}

	b.WriteString("| " + strings.Join(escapeCells(header), " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}
	b.WriteString("\n")
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderHTML converts Markdown to an HTML fragment.
func RenderHTML(source string) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// HTML renders a statistics summary as a standalone HTML page.
func HTML(title string, sum *stats.Summary) ([]byte, error) {
	body, err := RenderHTML(Markdown(title, sum))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("<link rel=\"stylesheet\" href=\"/static/style.css\">\n</head>\n<body>\n")
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
