package components

import (
	"github.com/theirongolddev/billtrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom bar: key hints on the left, right text
// flush right.
func RenderStatusBar(width int, hints, right string) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	rightStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	left := barStyle.Render(" ") + hints
	r := rightStyle.Render(right + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(r)
	if gap < 1 {
		// Drop the right side before truncating hints.
		r = ""
		gap = width - lipgloss.Width(left)
		if gap < 0 {
			gap = 0
		}
	}

	bar := left + barStyle.Render(spaces(gap)) + r
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
