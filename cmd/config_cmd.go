// Package cmd implements the billtrack CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/billtrack/internal/cli"
	"github.com/theirongolddev/billtrack/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return err
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = config.DataDir(cfg, envCfg)
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Println(cli.RenderKV("Data directory", dataDir, 16))
	fmt.Println(cli.RenderKV("Database", config.DBPath(dataDir), 16))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Println(cli.RenderKV("Theme", cfg.Appearance.Theme, 16))
	fmt.Println()

	fmt.Println("  [Notifications]")
	ttl := "never expire"
	if d := config.NotificationTTL(cfg); d > 0 {
		ttl = d.String()
	}
	fmt.Println(cli.RenderKV("Lifetime", ttl, 16))
	fmt.Println(cli.RenderKV("Max visible", fmt.Sprintf("%d", cfg.Notifications.MaxVisible), 16))
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Println(cli.RenderKV("Level", config.LogLevel(cfg, envCfg), 16))
	fmt.Println(cli.RenderKV("File", config.LogPath(cfg, dataDir), 16))
	fmt.Println()

	fmt.Println("  Run `billtrack setup` to reconfigure.")
	return nil
}
