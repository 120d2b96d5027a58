package components

import (
	"github.com/theirongolddev/billtrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderMonthBar renders the header: the viewed month with navigation arrows
// on the left and the profile scope pill on the right.
func RenderMonthBar(monthLabel, scope string, multi bool, width int) string {
	t := theme.Active

	bg := lipgloss.NewStyle().Background(t.Surface)
	arrowStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	monthStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	pillStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Padding(0, 1)
	if multi {
		pillStyle = pillStyle.Foreground(t.Background).Background(t.Accent).Bold(true)
	}

	left := bg.Render(" ") +
		arrowStyle.Render("◀ ") +
		monthStyle.Render(monthLabel) +
		arrowStyle.Render(" ▶")
	right := pillStyle.Render(scope) + bg.Render(" ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + bg.Render(spaces(gap)) + right
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
