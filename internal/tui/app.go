// Package tui provides the interactive Bubble Tea front-end of billtrack.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/theirongolddev/billtrack/internal/notify"
	"github.com/theirongolddev/billtrack/internal/profile"
	"github.com/theirongolddev/billtrack/internal/state"
	"github.com/theirongolddev/billtrack/internal/tui/components"
	"github.com/theirongolddev/billtrack/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Deps are the services the App reads and drives.
type Deps struct {
	State    *state.AppState
	Profiles profile.Registry
	Notes    *notify.Center
	NotesTTL time.Duration
	Logger   *slog.Logger
	Now      func() time.Time
}

// stateChangedMsg carries one AppState change from the watch channel.
type stateChangedMsg struct {
	change state.Change
	ok     bool
}

// confirmResultMsg is sent when a confirm callback finishes.
type confirmResultMsg struct {
	title string
	err   error
}

type tickMsg struct{}

// App is the root Bubble Tea model.
type App struct {
	st       *state.AppState
	profiles profile.Registry
	notes    *notify.Center
	notesTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time

	// State change subscription
	changes   <-chan state.Change
	stopWatch func()

	keys keyMap
	help help.Model

	// UI state
	width    int
	height   int
	showHelp bool

	switcher switcherState
	form     *profileForm
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	toastWidth       = 40
	modalMaxWidth    = 60
	minContentHeight = 5
	changeBuffer     = 16
	confirmTimeout   = 30 * time.Second
)

// NewApp creates the TUI model and subscribes it to state changes. Call
// Close when the program exits.
func NewApp(d Deps) App {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	changes, stop := d.State.Watch(changeBuffer)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Background(theme.Active.Surface)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Active.TextDim).Background(theme.Active.Surface)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Active.Cyan).Background(theme.Active.Surface).Bold(true)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Background(theme.Active.Surface)
	h.Styles.FullSeparator = lipgloss.NewStyle().Background(theme.Active.Surface)

	return App{
		st:        d.State,
		profiles:  d.Profiles,
		notes:     d.Notes,
		notesTTL:  d.NotesTTL,
		logger:    d.Logger,
		now:       d.Now,
		changes:   changes,
		stopWatch: stop,
		keys:      defaultKeyMap(),
		help:      h,
		switcher:  newSwitcherState(),
	}
}

// Close stops the state subscription.
func (a App) Close() {
	if a.stopWatch != nil {
		a.stopWatch()
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(waitForChange(a.changes), tickCmd())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if a.form != nil {
			a.form.form = a.form.form.WithWidth(a.modalWidth() - 6)
		}
		return a, nil

	case tickMsg:
		if n := a.notes.Prune(a.now()); n > 0 {
			a.logger.Debug("pruned notifications", "count", n)
		}
		return a, tickCmd()

	case stateChangedMsg:
		if !msg.ok {
			return a, nil
		}
		a.logger.Debug("state changed", "field", msg.change.Field.String())
		cmd := a.syncModal()
		return a, tea.Batch(cmd, waitForChange(a.changes))

	case confirmResultMsg:
		if msg.err != nil {
			a.logger.Error("confirm action failed", "title", msg.title, "err", msg.err)
			a.notes.Error(fmt.Sprintf("%s failed: %v", msg.title, msg.err))
		} else {
			a.notes.Success(msg.title + " done")
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.st.Modal().Open() {
			return a.updateModal(msg)
		}
		if a.switcher.editing() {
			return a.updateRename(msg)
		}
		if a.switcher.open {
			return a.updateSwitcher(msg)
		}
		return a.updateMain(msg)
	}

	// Forward unhandled messages to the profile form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateProfileForm(msg)
	}
	return a, nil
}

func (a App) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Help) {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.PrevMonth):
		a.st.PreviousMonth()
	case key.Matches(msg, a.keys.NextMonth):
		a.st.NextMonth()
	case key.Matches(msg, a.keys.ThisMonth):
		a.st.GoToCurrentMonth()
	case key.Matches(msg, a.keys.MultiProfile):
		a.toggleMultiProfile()
	case key.Matches(msg, a.keys.Profiles):
		a.switcher.openAt(a.activeIndex())
	case key.Matches(msg, a.keys.NewProfile):
		a.st.OpenProfileForm("")
	case key.Matches(msg, a.keys.CardForm):
		a.st.OpenCardForm("")
	case key.Matches(msg, a.keys.Installment):
		a.st.OpenInstallmentForm("")
	case key.Matches(msg, a.keys.OneTimeBill):
		a.st.OpenOneTimeBillModal("")
	case key.Matches(msg, a.keys.TransferCard):
		a.st.OpenTransferCardModal("")
	case key.Matches(msg, a.keys.ResetPrefs):
		a.st.Confirm(a.resetViewConfirm())
	case key.Matches(msg, a.keys.Dismiss):
		if n, ok := a.notes.Newest(); ok {
			a.notes.Remove(n.ID)
		}
	}
	cmd := a.syncModal()
	return a, cmd
}

func (a *App) toggleMultiProfile() {
	if err := a.st.ToggleMultiProfileMode(); err != nil {
		a.logger.Error("toggling multi-profile mode", "err", err)
		a.notes.Error("Could not save multi-profile mode")
		return
	}
	if a.st.MultiProfileMode() {
		a.notes.Info("Multi-profile mode on: select profiles with p, then space")
	} else {
		a.notes.Info("Multi-profile mode off")
	}
}

// resetViewConfirm builds the dialog that returns the view to its defaults.
func (a App) resetViewConfirm() state.ConfirmConfig {
	st := a.st
	return state.ConfirmConfig{
		Title:        "Reset view",
		Message:      "Jump back to the current month and turn off multi-profile mode?",
		Severity:     state.SeverityWarning,
		ConfirmLabel: "Reset",
		CancelLabel:  "Keep",
		OnConfirm: func(context.Context) error {
			st.GoToCurrentMonth()
			return st.SetMultiProfileMode(false)
		},
	}
}

// runConfirm fires cfg.OnConfirm in the background. The state container does
// not wait for it; the result comes back as a confirmResultMsg.
func runConfirm(cfg *state.ConfirmConfig) tea.Cmd {
	if cfg == nil || cfg.OnConfirm == nil {
		return nil
	}
	title := cfg.Title
	fn := cfg.OnConfirm
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
		defer cancel()
		return confirmResultMsg{title: title, err: fn(ctx)}
	}
}

func (a App) activeIndex() int {
	activeID := a.profiles.ActiveProfileID()
	for i, p := range a.profiles.Profiles() {
		if p.ID == activeID {
			return i
		}
	}
	return 0
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	out := a.viewMain()

	if a.showHelp {
		out = components.PlaceCenter(out, a.viewHelp(), a.width, a.height)
	}
	if m := a.st.Modal(); m.Open() {
		out = components.PlaceCenter(out, a.viewModal(m), a.width, a.height)
	}
	if toasts := components.RenderNotifications(a.notes.List(), toastWidth, a.notesTTL, a.now()); toasts != "" {
		out = components.PlaceAt(out, toasts, a.width-toastWidth-1, 1, a.width, a.height)
	}
	return out
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  billtrack needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderMonthBar(a.st.MonthLabel(), a.scopeLabel(), a.st.MultiProfileMode(), w)
	statusBar := components.RenderStatusBar(w, a.help.ShortHelpView(a.keys.ShortHelp()), a.st.ViewDateString())

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var b strings.Builder
	b.WriteString(a.renderOverview(cw))
	if a.switcher.open {
		b.WriteString("\n")
		b.WriteString(a.renderSwitcher(cw))
	}
	content := b.String()

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// scopeLabel names the profiles the view covers.
func (a App) scopeLabel() string {
	active, ok := a.profiles.ActiveProfile()
	if !a.st.MultiProfileMode() {
		if !ok {
			return "no profile"
		}
		return active.DisplayName()
	}
	if n := len(a.st.SelectedProfileIDs()); n > 0 {
		return fmt.Sprintf("%d profiles", n)
	}
	if ok {
		return "multi · " + active.DisplayName()
	}
	return "multi"
}

func (a App) profileNames(ids []string) []string {
	byID := make(map[string]string)
	for _, p := range a.profiles.Profiles() {
		byID[p.ID] = p.DisplayName()
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			names = append(names, n)
		} else {
			names = append(names, truncStr(id, 8))
		}
	}
	return names
}

func (a App) renderOverview(cw int) string {
	t := theme.Active

	ids := a.st.EffectiveProfileIDs(a.profiles.ActiveProfileID())
	mode := "single profile"
	modeColor := t.TextPrimary
	if a.st.MultiProfileMode() {
		mode = "multi-profile"
		modeColor = t.Accent
	}

	metrics := components.MetricRow([]components.Metric{
		{Label: "Month", Value: a.st.MonthLabel(), Hint: a.st.ViewDateString(), Color: t.AccentBright},
		{Label: "Profiles in view", Value: fmt.Sprintf("%d", len(ids)), Hint: truncStr(strings.Join(a.profileNames(ids), ", "), cw/3-6)},
		{Label: "Mode", Value: mode, Color: modeColor},
	}, cw)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)

	actions := []struct{ key, desc string }{
		{"c", "add a card"},
		{"i", "add an installment plan"},
		{"b", "record a one-time bill"},
		{"T", "transfer a card to another profile"},
		{"n", "create a profile"},
	}
	var body strings.Builder
	for _, act := range actions {
		body.WriteString(keyStyle.Render(fmt.Sprintf("%-3s", act.key)))
		body.WriteString(labelStyle.Render(act.desc))
		body.WriteString("\n")
	}

	return metrics + "\n" + components.ContentCard("Actions", strings.TrimSuffix(body.String(), "\n"), cw, false)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	full := a.help
	full.ShowAll = true

	return cardStyle.Render(
		titleStyle.Render("◈ Keyboard Shortcuts") + "\n\n" +
			full.FullHelpView(a.keys.FullHelp()) + "\n\n" +
			dimStyle.Render("Press any key to close"))
}

// ─── Helpers ────────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// waitForChange blocks until the next AppState change arrives.
func waitForChange(ch <-chan state.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		return stateChangedMsg{change: c, ok: ok}
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
