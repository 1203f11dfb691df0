package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GregLauar/Progress-Dashboard/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorBlueDim   = lipgloss.Color("#205EA6")
	ColorGreen     = lipgloss.Color("#879A39")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range t.Rows {
		for i, c := range row {
			if i < numCols && len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			// First column left-aligned, numeric columns right-aligned
			if i == 0 {
				b.WriteString(valueStyle.Render(fmt.Sprintf(" %-*s ", widths[i], cell)))
			} else {
				b.WriteString(valueStyle.Render(fmt.Sprintf(" %*s ", widths[i], cell)))
			}
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

// CompareTable renders a SeriesTriple as a month-by-month text table with
// budget, actual, and forecast columns. Missing entries render as "—".
func CompareTable(title string, triple model.SeriesTriple) string {
	t := Table{
		Title:   title,
		Headers: []string{"Month", "Budget", "Actual", "Forecast"},
	}

	for _, d := range triple.Dates() {
		row := []string{FormatMonth(d), "—", "—", "—"}
		if v, ok := triple.Budget.ValueAt(d); ok {
			row[1] = FormatCompact(v)
		}
		if v, ok := triple.Actual.ValueAt(d); ok {
			row[2] = FormatCompact(v)
		}
		if v, ok := triple.Forecast.ValueAt(d); ok {
			row[3] = FormatCompact(v)
		}
		t.Rows = append(t.Rows, row)
	}

	return RenderTable(t)
}

// ObjectiveTable renders OKR summaries with per-objective progress bars.
func ObjectiveTable(summaries []model.ObjectiveSummary, barWidth int) string {
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	for _, s := range summaries {
		b.WriteString(headerStyle.Render(s.Objective))
		b.WriteString("  ")
		b.WriteString(progressLine(s.AvgProgress, barWidth))
		b.WriteString("\n")
		for _, c := range s.Children {
			b.WriteString(mutedStyle.Render("    " + c.ChildItem))
			b.WriteString("  ")
			b.WriteString(progressLine(c.Progress, barWidth))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func progressLine(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * float64(width))
	bar := lipgloss.NewStyle().Foreground(ColorGreen).Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled))
	return bar + " " + valueStyle.Render(FormatPercent(pct))
}
