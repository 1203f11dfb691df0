package components

import (
	"fmt"
	"strings"

	"github.com/GregLauar/Progress-Dashboard/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. The warning segment is
// used for non-fatal load issues like a missing logo file.
func RenderStatusBar(width int, dataAge, warning string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [r]eload  [q]uit"
	if warning != "" {
		warnStyle := lipgloss.NewStyle().Foreground(t.Yellow)
		left += "  " + warnStyle.Render("⚠ "+warning)
	}
	right := ""
	if dataAge != "" {
		right = fmt.Sprintf("Data: %s ", dataAge)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
