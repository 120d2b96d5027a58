package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/billtrack/internal/cli"
	"github.com/theirongolddev/billtrack/internal/profile"

	"github.com/spf13/cobra"
)

var flagResetAll bool

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show stored view preferences",
	RunE:  runPrefs,
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Turn off multi-profile mode and clear the profile selection",
	RunE:  runPrefsReset,
}

func init() {
	prefsResetCmd.Flags().BoolVar(&flagResetAll, "all", false, "Also forget the active profile")
	prefsCmd.AddCommand(prefsResetCmd)
	rootCmd.AddCommand(prefsCmd)
}

func runPrefs(_ *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	entries, err := e.store.Entries()
	if err != nil {
		return err
	}
	profileCount, err := e.store.ProfileCount()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("STORED PREFERENCES"))
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("  No preferences stored yet.")
		fmt.Println()
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(entries))
	for _, ent := range entries {
		rows = append(rows, []string{
			ent.Key,
			cli.Truncate(cli.FormatStoredValue(ent.Value), 48),
			cli.FormatAge(ent.UpdatedAt, now),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Key", "Value", "Updated"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Println(cli.RenderKV("Multi-profile", cli.FormatOnOff(e.state.MultiProfileMode()), 14))
	fmt.Println(cli.RenderKV("Month", e.state.MonthLabel(), 14))
	fmt.Println(cli.RenderKV("Profiles", cli.FormatCount(profileCount, "profile", "profiles"), 14))
	fmt.Println()
	return nil
}

func runPrefsReset(_ *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.state.SetMultiProfileMode(false); err != nil {
		return err
	}
	if flagResetAll {
		if err := e.store.Remove(profile.KeyActiveProfileID); err != nil {
			return fmt.Errorf("clearing active profile: %w", err)
		}
	}

	e.logger.Info("preferences reset", "all", flagResetAll)
	fmt.Println(cli.RenderStatus(true, "Preferences reset."))
	return nil
}
