package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/GregLauar/Progress-Dashboard/internal/cli"
	"github.com/GregLauar/Progress-Dashboard/internal/model"
	"github.com/GregLauar/Progress-Dashboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// column is one x-position of the comparison chart: the realized value
// (actual, falling back to forecast) plus the budget reference level.
type column struct {
	label       string
	value       float64
	hasValue    bool
	isForecast  bool
	budget      float64
	hasBudget   bool
	valueString string
}

// CompareChart renders a budget/actual/forecast comparison: one bar per
// month (actual, or forecast where no actual exists yet) with the budget
// drawn as a dashed overlay at its own level. Value labels sit above each
// bar in compact notation.
func CompareChart(triple model.SeriesTriple, width, height int) string {
	t := theme.Active
	if triple.Empty() {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("(no data in window)")
	}

	cols := buildColumns(triple)
	if width < 20 || height < 4 {
		vals := make([]float64, len(cols))
		for i, c := range cols {
			vals[i] = c.value
		}
		return Sparkline(vals, t.Actual)
	}

	// Scale over every visible level, budget included. Negative levels
	// extend the axis below zero instead of being clipped away.
	maxVal, minVal := 0.0, 0.0
	for _, c := range cols {
		if c.hasValue {
			if c.value > maxVal {
				maxVal = c.value
			}
			if c.value < minVal {
				minVal = c.value
			}
		}
		if c.hasBudget {
			if c.budget > maxVal {
				maxVal = c.budget
			}
			if c.budget < minVal {
				minVal = c.budget
			}
		}
	}
	if maxVal == 0 && minVal == 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(math.Max(maxVal, -minVal))
	maxIntervals := height / 2
	if maxIntervals < 2 {
		maxIntervals = 2
	}
	for {
		n := int(math.Ceil(maxVal/tickStep)) + int(math.Ceil(-minVal/tickStep))
		if n <= maxIntervals {
			break
		}
		tickStep *= 2
	}
	posIntervals := int(math.Ceil(maxVal / tickStep))
	negIntervals := int(math.Ceil(-minVal / tickStep))
	if posIntervals+negIntervals < 1 {
		posIntervals = 1
	}
	ceiling := float64(posIntervals) * tickStep
	floor := -float64(negIntervals) * tickStep

	rowsPerTick := height / (posIntervals + negIntervals)
	if rowsPerTick < 2 {
		rowsPerTick = 2
	}
	posRows := rowsPerTick * posIntervals
	negRows := rowsPerTick * negIntervals

	yLabelW := len(formatChartLabel(ceiling)) + 1
	if negIntervals > 0 {
		if w := len(formatChartLabel(floor)) + 1; w > yLabelW {
			yLabelW = w
		}
	}
	if yLabelW < 4 {
		yLabelW = 4
	}
	tickLabels := make(map[int]string)
	for i := 1; i <= posIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	n := len(cols)

	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := 2
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	} else {
		barW = chartW
	}
	if barW < 2 && n > 1 {
		// Too many columns for the width: keep every k-th month.
		maxN := (chartW + 1) / 3
		if maxN < 2 {
			maxN = 2
		}
		sampled := make([]column, maxN)
		for i := range sampled {
			sampled[i] = cols[i*(n-1)/(maxN-1)]
		}
		cols = sampled
		n = maxN
		barW = 2
	}
	if barW > 7 {
		barW = 7
	}
	axisLen := n*barW + max(0, n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)
	actualStyle := lipgloss.NewStyle().Foreground(t.Actual).Background(t.Surface)
	forecastStyle := lipgloss.NewStyle().Foreground(t.Forecast).Background(t.Surface)
	budgetStyle := lipgloss.NewStyle().Foreground(t.BudgetLine).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder

	// Value labels above the plot, one per column, centered over its bar.
	b.WriteString(blankStyle.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(labelStyle.Render(labelRow(cols, barW, gap, axisLen)))
	b.WriteString("\n")

	for row := posRows; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(posRows)
		rowBottom := ceiling * float64(row-1) / float64(posRows)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, c := range cols {
			if i > 0 && gap > 0 {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", gap)))
			}

			// Budget overlay wins the cell its level falls in, so the
			// reference line stays visible on top of a taller bar.
			if c.hasBudget && c.budget > rowBottom && c.budget <= rowTop {
				b.WriteString(budgetStyle.Render(strings.Repeat("┄", barW)))
				continue
			}

			style := actualStyle
			if c.isForecast {
				style = forecastStyle
			}
			switch {
			case c.hasValue && c.value >= rowTop:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case c.hasValue && c.value > rowBottom:
				frac := (c.value - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 8 {
					idx = 8
				}
				if idx < 1 {
					idx = 1
				}
				b.WriteString(style.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blankStyle.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	// Zero axis. When negative levels exist, bars continue below this line
	// and the month labels move under the lowest band.
	zeroJoin := "└"
	if negRows > 0 {
		zeroJoin = "┼"
	}
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render(zeroJoin))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	for row := 1; row <= negRows; row++ {
		bandTop := floor * float64(row-1) / float64(negRows)
		bandBottom := floor * float64(row) / float64(negRows)

		label := ""
		if row%rowsPerTick == 0 {
			label = formatChartLabel(bandBottom)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, c := range cols {
			if i > 0 && gap > 0 {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", gap)))
			}

			if c.hasBudget && c.budget <= bandTop && c.budget > bandBottom {
				b.WriteString(budgetStyle.Render(strings.Repeat("┄", barW)))
				continue
			}

			style := actualStyle
			if c.isForecast {
				style = forecastStyle
			}
			switch {
			case c.hasValue && c.value <= bandBottom:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case c.hasValue && c.value < bandTop:
				// Downward bar ends inside this band.
				b.WriteString(style.Render(strings.Repeat("▀", barW)))
			default:
				b.WriteString(blankStyle.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	// Month labels
	b.WriteString(blankStyle.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(axisStyle.Render(monthRow(cols, barW, gap, axisLen)))
	b.WriteString("\n")

	// Legend
	b.WriteString(blankStyle.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(actualStyle.Render("█ Actual"))
	b.WriteString(blankStyle.Render("  "))
	b.WriteString(forecastStyle.Render("█ Forecast"))
	b.WriteString(blankStyle.Render("  "))
	b.WriteString(budgetStyle.Render("┄ Budget"))

	return b.String()
}

func buildColumns(triple model.SeriesTriple) []column {
	dates := triple.Dates()
	cols := make([]column, 0, len(dates))
	for _, d := range dates {
		c := column{label: cli.FormatMonth(d)}
		if v, ok := triple.Actual.ValueAt(d); ok {
			c.value, _ = v.Float64()
			c.hasValue = true
			c.valueString = cli.FormatCompact(v)
		} else if v, ok := triple.Forecast.ValueAt(d); ok {
			c.value, _ = v.Float64()
			c.hasValue = true
			c.isForecast = true
			c.valueString = cli.FormatCompact(v)
		}
		if v, ok := triple.Budget.ValueAt(d); ok {
			c.budget, _ = v.Float64()
			c.hasBudget = true
		}
		cols = append(cols, c)
	}
	return cols
}

// labelRow lays the per-column value strings across the axis, skipping any
// label that would collide with its neighbor.
func labelRow(cols []column, barW, gap, axisLen int) string {
	buf := make([]byte, axisLen)
	for i := range buf {
		buf[i] = ' '
	}
	lastEnd := -1
	for i, c := range cols {
		if c.valueString == "" {
			continue
		}
		center := i*(barW+gap) + barW/2
		pos := center - len(c.valueString)/2
		if pos < 0 {
			pos = 0
		}
		end := pos + len(c.valueString)
		if end > axisLen {
			pos = axisLen - len(c.valueString)
			end = axisLen
		}
		if pos <= lastEnd || pos < 0 {
			continue
		}
		copy(buf[pos:end], c.valueString)
		lastEnd = end
	}
	return strings.TrimRight(string(buf), " ")
}

func monthRow(cols []column, barW, gap, axisLen int) string {
	buf := make([]byte, axisLen)
	for i := range buf {
		buf[i] = ' '
	}
	n := len(cols)
	minSpacing := 8
	labelStep := max(1, (n*minSpacing)/(axisLen+1))

	lastEnd := -1
	for i := 0; i < n; i += labelStep {
		pos := i * (barW + gap)
		lbl := cols[i].label
		end := pos + len(lbl)
		if pos <= lastEnd {
			continue
		}
		if end > axisLen {
			end = axisLen
			if end-pos < 3 {
				continue
			}
			lbl = lbl[:end-pos]
		}
		copy(buf[pos:end], lbl)
		lastEnd = end + 1
	}
	if n > 1 {
		lbl := cols[n-1].label
		pos := (n - 1) * (barW + gap)
		end := pos + len(lbl)
		if end > axisLen {
			pos = axisLen - len(lbl)
			end = axisLen
		}
		if pos >= 0 && pos > lastEnd {
			copy(buf[pos:end], lbl)
		}
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	if v < 0 {
		return "-" + formatChartLabel(-v)
	}
	switch {
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fK", v/1e3)
		}
		return fmt.Sprintf("%.1fK", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
