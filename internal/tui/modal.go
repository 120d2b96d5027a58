package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/billtrack/internal/profile"
	"github.com/theirongolddev/billtrack/internal/state"
	"github.com/theirongolddev/billtrack/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// profileForm is the huh form behind the profile-form modal. It is held by
// pointer so the bound name survives App copies.
type profileForm struct {
	form *huh.Form
	data state.ProfileFormData
	name *string
}

func newProfileForm(data state.ProfileFormData, current string, width int) *profileForm {
	pf := &profileForm{data: data, name: new(string)}
	*pf.name = current

	title := "New profile"
	if data.ProfileID != "" {
		title = "Rename profile"
	}

	pf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Profiles keep separate sets of cards and bills.").
				Placeholder("e.g. Household").
				CharLimit(profile.MaxNameLength).
				Value(pf.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
		),
	).WithShowHelp(false).WithWidth(width)
	return pf
}

// syncModal builds or drops the profile form so it matches the modal state.
// It is idempotent and safe to call after any state change.
func (a *App) syncModal() tea.Cmd {
	m := a.st.Modal()
	if m.Kind != state.ModalProfileForm {
		a.form = nil
		return nil
	}
	data, _ := m.Data.(state.ProfileFormData)
	if a.form != nil && a.form.data == data {
		return nil
	}

	current := ""
	if data.ProfileID != "" {
		for _, p := range a.profiles.Profiles() {
			if p.ID == data.ProfileID {
				current = p.Name
				break
			}
		}
	}
	a.form = newProfileForm(data, current, a.modalWidth()-6)
	return a.form.form.Init()
}

func (a App) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m := a.st.Modal()

	switch m.Kind {
	case state.ModalConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			a.st.CloseModal()
			a.form = nil
			return a, runConfirm(m.Confirm)
		case "n", "N", "esc", "q":
			a.st.CloseModal()
		}
		return a, nil

	case state.ModalProfileForm:
		if msg.String() == "esc" {
			a.st.CloseModal()
			a.form = nil
			return a, nil
		}
		if a.form == nil {
			cmd := a.syncModal()
			return a, cmd
		}
		return a.updateProfileForm(msg)
	}

	switch msg.String() {
	case "esc", "enter", "q":
		a.st.CloseModal()
	}
	return a, nil
}

func (a App) updateProfileForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form.form = f
	}

	switch a.form.form.State {
	case huh.StateCompleted:
		a.finishProfileForm()
		return a, nil
	case huh.StateAborted:
		a.st.CloseModal()
		a.form = nil
		return a, nil
	}
	return a, cmd
}

// finishProfileForm saves the submitted form and closes the modal.
func (a *App) finishProfileForm() {
	pf := a.form
	a.form = nil
	a.st.CloseModal()
	if pf == nil {
		return
	}

	name := strings.TrimSpace(*pf.name)
	if pf.data.ProfileID == "" {
		p, err := a.profiles.CreateProfile(name)
		if err != nil {
			a.logger.Error("creating profile", "err", err)
			a.notes.Error(fmt.Sprintf("Could not create profile: %v", err))
			return
		}
		a.notes.Success("Created profile " + p.DisplayName())
		return
	}

	if err := a.profiles.RenameProfile(pf.data.ProfileID, name); err != nil {
		a.logger.Error("renaming profile", "id", pf.data.ProfileID, "err", err)
		a.notes.Error(fmt.Sprintf("Could not rename profile: %v", err))
		return
	}
	a.notes.Success("Renamed profile to " + name)
}

func (a App) modalWidth() int {
	w := a.width - 4
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < 30 {
		w = 30
	}
	return w
}

var modalTitles = map[state.ModalKind]string{
	state.ModalCardForm:        "Card",
	state.ModalInstallmentForm: "Installment plan",
	state.ModalOneTimeBill:     "One-time bill",
	state.ModalProfileForm:     "Profile",
	state.ModalTransferCard:    "Transfer card",
	state.ModalConfirm:         "Confirm",
}

// modalSubject describes what a modal payload points at.
func modalSubject(data any) string {
	pick := func(noun, id string) string {
		if id == "" {
			return "new " + noun
		}
		return noun + " " + id
	}
	switch d := data.(type) {
	case state.CardFormData:
		return pick("card", d.CardID)
	case state.InstallmentFormData:
		return pick("installment", d.InstallmentID)
	case state.OneTimeBillData:
		return pick("bill", d.BillID)
	case state.ProfileFormData:
		return pick("profile", d.ProfileID)
	case state.TransferCardData:
		if d.CardID == "" {
			return "choose a card"
		}
		return "card " + d.CardID
	}
	return ""
}

func (a App) viewModal(m state.Modal) string {
	t := theme.Active
	w := a.modalWidth()

	border := t.BorderAccent
	if m.Kind == state.ModalConfirm && m.Confirm != nil {
		border = t.Level(string(m.Confirm.Severity))
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(t.Surface).
		Padding(1, 2).
		Width(w)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	switch m.Kind {
	case state.ModalConfirm:
		b.WriteString(a.renderConfirm(m.Confirm))

	case state.ModalProfileForm:
		if a.form != nil {
			b.WriteString(a.form.form.View())
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("[enter] save  [esc] cancel"))

	default:
		b.WriteString(titleStyle.Render(modalTitles[m.Kind]))
		b.WriteString("\n\n")
		b.WriteString(textStyle.Render(modalSubject(m.Data)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("[esc] close"))
	}

	return cardStyle.Render(b.String())
}

func (a App) renderConfirm(cfg *state.ConfirmConfig) string {
	t := theme.Active
	if cfg == nil {
		return ""
	}

	color := t.Level(string(cfg.Severity))
	titleStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	okStyle := lipgloss.NewStyle().Foreground(t.Background).Background(color).Bold(true).Padding(0, 1)
	cancelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.SurfaceBright).Padding(0, 1)
	gap := lipgloss.NewStyle().Background(t.Surface).Render("  ")

	confirmLabel := cfg.ConfirmLabel
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}
	cancelLabel := cfg.CancelLabel
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}

	title := cfg.Title
	if title == "" {
		title = "Are you sure?"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	if cfg.Message != "" {
		b.WriteString(textStyle.Render(cfg.Message))
		b.WriteString("\n\n")
	}
	b.WriteString(okStyle.Render("y " + confirmLabel))
	b.WriteString(gap)
	b.WriteString(cancelStyle.Render("n " + cancelLabel))
	return b.String()
}
