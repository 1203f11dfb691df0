package tui

import (
	"strings"

	"github.com/GregLauar/Progress-Dashboard/internal/model"
	"github.com/GregLauar/Progress-Dashboard/internal/tui/components"
	"github.com/GregLauar/Progress-Dashboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOKRPage(cw, contentH int) string {
	summaries := a.objectiveSummaries()
	if len(summaries) == 0 {
		dim := lipgloss.NewStyle().Foreground(theme.Active.TextDim)
		return dim.Render("  (no objectives in the OKR export)")
	}

	body := renderObjectives(summaries, a.okrCursor, components.CardInnerWidth(cw))
	card := components.ContentCard("Objectives & Key Results", body, cw)
	return truncateHeight(card, contentH)
}

// renderObjectives lists every objective with its average bar; the selected
// objective also shows its key results.
func renderObjectives(summaries []model.ObjectiveSummary, cursor, innerW int) string {
	t := theme.Active

	labelW := innerW / 3
	if labelW < 16 {
		labelW = 16
	}
	barW := innerW - labelW - 8
	if barW < 10 {
		barW = 10
	}

	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for i, s := range summaries {
		marker := "  "
		if i == cursor {
			marker = cursorStyle.Render("▸ ")
		}
		b.WriteString(marker)
		b.WriteString(components.ObjectiveBar(s.Objective, s.AvgProgress, labelW-2, barW))
		b.WriteString("\n")

		if i == cursor {
			for _, c := range s.Children {
				b.WriteString("  ")
				b.WriteString(components.ChildBar(c.ChildItem, c.Progress, labelW-2, barW))
				b.WriteString("\n")
			}
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  j/k select objective"))

	return b.String()
}
