package tui

import (
	"strings"

	"github.com/GregLauar/Progress-Dashboard/internal/cli"
	"github.com/GregLauar/Progress-Dashboard/internal/model"
	"github.com/GregLauar/Progress-Dashboard/internal/pipeline"
	"github.com/GregLauar/Progress-Dashboard/internal/tui/components"
	"github.com/GregLauar/Progress-Dashboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderDashboard(cw, contentH int) string {
	t := theme.Active
	var b strings.Builder

	if a.brand != "" {
		brandStyle := lipgloss.NewStyle().Foreground(t.TextDim)
		b.WriteString(brandStyle.Render(a.brand))
		b.WriteString("\n")
	}

	aum := pipeline.CompareSeries(a.tables.AuM, model.CategoryAuM, false)
	revenues := pipeline.CompareSeries(a.tables.Budget, model.CategoryRevenues, true)
	profit := pipeline.CompareSeries(a.tables.Budget, model.CategoryProfit, true)

	// Row 1: headline metric cards
	widths := components.LayoutRow(cw, 3)
	cards := []string{
		metricFromTriple("AuM", aum, widths[0]),
		metricFromTriple("Revenues YTD", revenues, widths[1]),
		metricFromTriple("Profit YTD", profit, widths[2]),
	}
	b.WriteString(components.CardRow(cards))
	b.WriteString("\n")

	// Row 2: AuM evolution, full width
	chartH := 10
	if contentH < 28 {
		chartH = 7
	}
	b.WriteString(components.ContentCard(
		"AuM (BRL)",
		components.CompareChart(aum, components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")

	// Row 3: cumulative revenues and profit, side by side
	halves := components.LayoutRow(cw, 2)
	left := components.ContentCard(
		"Revenues (BRL, cumulative)",
		components.CompareChart(revenues, components.CardInnerWidth(halves[0]), chartH-2),
		halves[0],
	)
	right := components.ContentCard(
		"Profit (BRL, cumulative)",
		components.CompareChart(profit, components.CardInnerWidth(halves[1]), chartH-2),
		halves[1],
	)
	b.WriteString(components.CardRow([]string{left, right}))

	return b.String()
}

// metricFromTriple builds a headline card from the most recent actual point,
// with budget attainment for the same month as the footnote.
func metricFromTriple(label string, triple model.SeriesTriple, width int) string {
	if len(triple.Actual) == 0 {
		return components.MetricCard(label, "—", "no actuals yet", width)
	}

	last := triple.Actual[len(triple.Actual)-1]
	value := cli.FormatCompact(last.Value)

	note := cli.FormatMonth(last.Date)
	if budget, ok := triple.Budget.ValueAt(last.Date); ok && !budget.IsZero() {
		ratio, _ := last.Value.Div(budget).Float64()
		note += "  " + cli.FormatPercent(ratio) + " of budget"
	}

	return components.MetricCard(label, value, note, width)
}
