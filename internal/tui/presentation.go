package tui

import (
	"strings"

	"github.com/GregLauar/Progress-Dashboard/internal/model"
	"github.com/GregLauar/Progress-Dashboard/internal/pipeline"
	"github.com/GregLauar/Progress-Dashboard/internal/tui/components"
	"github.com/GregLauar/Progress-Dashboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// viewPresentation renders the full-screen TV slide for the current cycler
// position. The slide only changes when the dwell timer fires.
func (a App) viewPresentation() string {
	t := theme.Active
	w := a.width
	h := a.height

	if !a.onAir || a.tables == nil {
		dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			dim.Render("presentation idle  ·  [q] back"),
			lipgloss.WithWhitespaceBackground(t.Background))
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	slideW := w - 8
	if slideW > maxContentWidth {
		slideW = maxContentWidth
	}
	chartH := h - 12
	if chartH < 6 {
		chartH = 6
	}
	if chartH > 24 {
		chartH = 24
	}

	var body string
	switch a.slide.Kind {
	case model.ViewOKR:
		body = renderObjectives(a.objectiveSummaries(), -1, slideW)
	default:
		records := a.tables.Table(a.slide.Table)
		triple := pipeline.CompareSeries(records, a.slide.Category, a.slide.Cumulative)
		body = components.CompareChart(triple, slideW, chartH)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.slide.Title))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(slideCounter(a.cycler.Index(), a.cycler.Len())))

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, b.String(),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// slideCounter shows which slide is on screen. The cycler index already
// points at the next slide, so the on-screen one is the previous position.
func slideCounter(nextIndex, total int) string {
	if total == 0 {
		return ""
	}
	current := ((nextIndex-1)%total + total) % total
	dots := make([]string, total)
	for i := range dots {
		if i == current {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}
	return strings.Join(dots, " ")
}
