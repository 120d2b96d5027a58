package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/billtrack/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ProfileRow is one line of the profile switcher.
type ProfileRow struct {
	ID       string
	Name     string
	Active   bool
	Selected bool
}

// SwitcherView is everything RenderProfileSwitcher needs.
type SwitcherView struct {
	Rows      []ProfileRow
	Cursor    int
	Multi     bool
	EditingID string
	Editor    string // rendered text input for the row being renamed
}

// RenderProfileSwitcher renders the profile switcher panel body.
func RenderProfileSwitcher(v SwitcherView, width int) string {
	t := theme.Active
	inner := CardInnerWidth(width)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	cursorStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	activeStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	padStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	if len(v.Rows) == 0 {
		b.WriteString(dimStyle.Render("No profiles yet. Press n to create one."))
		b.WriteString("\n")
	}

	for i, r := range v.Rows {
		check := ""
		if v.Multi {
			check = "[ ] "
			if r.Selected {
				check = "[x] "
			}
		}
		active := ""
		if r.Active {
			active = " ●"
		}

		if r.ID == v.EditingID && v.EditingID != "" {
			b.WriteString(markerStyle.Render("▸ "))
			b.WriteString(rowStyle.Render(check))
			b.WriteString(v.Editor)
			b.WriteString("\n")
			continue
		}

		if i == v.Cursor {
			line := markerStyle.Render("▸ ") + cursorStyle.Render(check+r.Name)
			if r.Active {
				line += lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.SurfaceBright).Render(active)
			}
			if pad := inner - lipgloss.Width(line); pad > 0 {
				line += lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad))
			}
			b.WriteString(line)
		} else {
			b.WriteString(padStyle.Render("  "))
			b.WriteString(rowStyle.Render(check + r.Name))
			if r.Active {
				b.WriteString(activeStyle.Render(active))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "[j/k] move  [enter] activate  [r] rename  [e] edit  [n] new  [esc] close"
	if v.Multi {
		hint = "[space] select  " + hint
	}
	if v.EditingID != "" {
		hint = "[enter] save  [esc] cancel"
	}
	b.WriteString(dimStyle.Render(hint))

	title := "Profiles"
	if v.Multi {
		selected := 0
		for _, r := range v.Rows {
			if r.Selected {
				selected++
			}
		}
		title = fmt.Sprintf("Profiles · %d selected", selected)
	}
	return ContentCard(title, b.String(), width, true)
}
