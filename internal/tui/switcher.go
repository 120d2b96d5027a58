package tui

import (
	"fmt"

	"github.com/theirongolddev/billtrack/internal/profile"
	"github.com/theirongolddev/billtrack/internal/tui/components"
	"github.com/theirongolddev/billtrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// switcherState is the profile switcher panel. The rename draft lives only
// while a row is being edited and is dropped on commit, cancel, or close.
type switcherState struct {
	open      bool
	cursor    int
	editingID string
	draft     textinput.Model
}

func newSwitcherState() switcherState {
	return switcherState{draft: textinput.New()}
}

func (s *switcherState) openAt(cursor int) {
	s.open = true
	s.cursor = cursor
	s.clearDraft()
}

func (s *switcherState) close() {
	s.open = false
	s.clearDraft()
}

func (s *switcherState) editing() bool {
	return s.open && s.editingID != ""
}

func (s *switcherState) startEdit(id, name string) tea.Cmd {
	t := theme.Active
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = profile.MaxNameLength
	ti.SetValue(name)
	ti.CursorEnd()
	ti.TextStyle = lipgloss.NewStyle().Foreground(t.TextPrimary)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(t.AccentBright)
	s.editingID = id
	s.draft = ti
	return s.draft.Focus()
}

func (s *switcherState) clearDraft() {
	s.editingID = ""
	s.draft = textinput.New()
}

func (a App) updateSwitcher(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.profiles.Profiles()
	if a.switcher.cursor >= len(rows) {
		a.switcher.cursor = max(0, len(rows)-1)
	}

	switch msg.String() {
	case "esc", "p", "q":
		a.switcher.close()

	case "j", "down":
		if a.switcher.cursor < len(rows)-1 {
			a.switcher.cursor++
		}

	case "k", "up":
		if a.switcher.cursor > 0 {
			a.switcher.cursor--
		}

	case "enter":
		if len(rows) == 0 {
			return a, nil
		}
		p := rows[a.switcher.cursor]
		if err := a.profiles.SetActiveProfile(p.ID); err != nil {
			a.logger.Error("activating profile", "id", p.ID, "err", err)
			a.notes.Error("Could not switch profile")
			return a, nil
		}
		a.notes.Success("Switched to " + p.DisplayName())

	case " ":
		if len(rows) == 0 {
			return a, nil
		}
		if !a.st.MultiProfileMode() {
			a.notes.Info("Turn on multi-profile mode (m) to select several profiles")
			return a, nil
		}
		if err := a.st.ToggleProfileSelection(rows[a.switcher.cursor].ID); err != nil {
			a.logger.Error("toggling profile selection", "err", err)
			a.notes.Error("Could not save profile selection")
		}

	case "m":
		a.toggleMultiProfile()

	case "r":
		if len(rows) == 0 {
			return a, nil
		}
		p := rows[a.switcher.cursor]
		cmd := a.switcher.startEdit(p.ID, p.Name)
		return a, cmd

	case "e":
		if len(rows) == 0 {
			return a, nil
		}
		a.st.OpenProfileForm(rows[a.switcher.cursor].ID)
		cmd := a.syncModal()
		return a, cmd

	case "n":
		a.st.OpenProfileForm("")
		cmd := a.syncModal()
		return a, cmd
	}
	return a, nil
}

func (a App) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		id := a.switcher.editingID
		name := a.switcher.draft.Value()
		a.switcher.clearDraft()
		if err := a.profiles.RenameProfile(id, name); err != nil {
			a.logger.Warn("renaming profile", "id", id, "err", err)
			a.notes.Error(fmt.Sprintf("Rename failed: %v", err))
			return a, nil
		}
		a.notes.Success("Renamed profile to " + name)
		return a, nil

	case "esc":
		a.switcher.clearDraft()
		return a, nil
	}

	var cmd tea.Cmd
	a.switcher.draft, cmd = a.switcher.draft.Update(msg)
	return a, cmd
}

func (a App) renderSwitcher(cw int) string {
	activeID := a.profiles.ActiveProfileID()
	multi := a.st.MultiProfileMode()

	v := components.SwitcherView{
		Cursor:    a.switcher.cursor,
		Multi:     multi,
		EditingID: a.switcher.editingID,
	}
	for _, p := range a.profiles.Profiles() {
		v.Rows = append(v.Rows, components.ProfileRow{
			ID:       p.ID,
			Name:     p.DisplayName(),
			Active:   p.ID == activeID,
			Selected: multi && a.st.IsProfileSelected(p.ID),
		})
	}
	if v.EditingID != "" {
		v.Editor = a.switcher.draft.View()
	}
	return components.RenderProfileSwitcher(v, cw)
}
