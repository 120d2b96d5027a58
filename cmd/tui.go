package cmd

import (
	"fmt"

	"github.com/theirongolddev/billtrack/internal/config"
	"github.com/theirongolddev/billtrack/internal/tui"
	"github.com/theirongolddev/billtrack/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive month view",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	theme.SetActive(e.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Deps{
		State:    e.state,
		Profiles: e.profiles,
		Notes:    e.notes,
		NotesTTL: config.NotificationTTL(e.cfg),
		Logger:   e.logger,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	e.logger.Info("starting tui", "month", e.state.ViewDateString(), "multi_profile", e.state.MultiProfileMode())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
