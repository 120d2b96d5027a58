package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/billtrack/internal/cli"
	"github.com/theirongolddev/billtrack/internal/config"
	"github.com/theirongolddev/billtrack/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	themeName := cfg.Appearance.Theme
	ttl := strconv.Itoa(cfg.Notifications.TTLSec)
	level := cfg.Log.Level

	themeOpts := make([]huh.Option[string], 0, len(theme.Names()))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to billtrack").
				Description("A few preferences. Run `billtrack setup` anytime to change them."),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
			huh.NewInput().
				Title("Notification lifetime (seconds)").
				Description("0 keeps notifications until dismissed.").
				Value(&ttl).
				Validate(func(s string) error {
					_, err := parseTTL(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&level),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println(cli.RenderStatus(false, "Setup cancelled, nothing saved."))
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	cfg.Appearance.Theme = themeName
	cfg.Notifications.TTLSec, _ = parseTTL(ttl)
	cfg.Log.Level = level

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.RenderStatus(true, "Saved to "+config.Path()))
	fmt.Println()
	return nil
}

// parseTTL reads the notification lifetime entered in the wizard.
func parseTTL(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > config.MaxNotificationTTLSec {
		return 0, fmt.Errorf("enter a whole number of seconds from 0 to %d", config.MaxNotificationTTLSec)
	}
	return n, nil
}
