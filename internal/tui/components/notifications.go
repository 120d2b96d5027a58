package components

import (
	"strings"
	"time"

	"github.com/theirongolddev/billtrack/internal/notify"
	"github.com/theirongolddev/billtrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var levelIcons = map[notify.Level]string{
	notify.LevelSuccess: "✓",
	notify.LevelInfo:    "i",
	notify.LevelWarning: "!",
	notify.LevelError:   "✗",
}

// RenderNotifications renders the toast stack, newest at the bottom. ttl
// drives the lifetime bar under each toast; zero hides it.
func RenderNotifications(items []notify.Notification, width int, ttl time.Duration, now time.Time) string {
	if len(items) == 0 {
		return ""
	}

	toasts := make([]string, 0, len(items))
	for _, n := range items {
		toasts = append(toasts, renderToast(n, width, ttl, now))
	}
	return strings.Join(toasts, "\n")
}

func renderToast(n notify.Notification, width int, ttl time.Duration, now time.Time) string {
	t := theme.Active
	color := t.Level(string(n.Level))

	inner := width - 4 // border + padding
	if inner < 10 {
		inner = 10
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Background(t.SurfaceHover).
		Width(width-2).
		Padding(0, 1)
	iconStyle := lipgloss.NewStyle().Foreground(color).Background(t.SurfaceHover).Bold(true)
	msgStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Width(inner - 2)
	ageStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.SurfaceHover)

	icon := levelIcons[n.Level]
	if icon == "" {
		icon = "•"
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		iconStyle.Render(icon+" "),
		msgStyle.Render(n.Message))
	body += "\n" + ageStyle.Render(humanize.RelTime(n.CreatedAt, now, "ago", "from now"))

	if ttl > 0 {
		remaining := 1 - float64(now.Sub(n.CreatedAt))/float64(ttl)
		body += "\n" + LifetimeBar(remaining, inner, color)
	}

	return boxStyle.Render(body)
}

// LifetimeBar renders a thin bar showing how much of a toast's life is left.
func LifetimeBar(pct float64, width int, color lipgloss.Color) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 4 {
		width = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.Full = '▔'
	bar.Empty = ' '
	bar.EmptyColor = string(t.SurfaceHover)
	return bar.ViewAs(pct)
}
