package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/theirongolddev/billtrack/internal/config"
	"github.com/theirongolddev/billtrack/internal/logging"
	"github.com/theirongolddev/billtrack/internal/notify"
	"github.com/theirongolddev/billtrack/internal/profile"
	"github.com/theirongolddev/billtrack/internal/state"
	"github.com/theirongolddev/billtrack/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagDataDir  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "billtrack",
	Short: "Track credit cards, installments and bills across profiles",
	Long:  "billtrack keeps monthly bills for one or more profiles in a local database and lets you browse them month by month.",
	RunE:  runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A missing .env is the common case.
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the billtrack database (default $XDG_DATA_HOME/billtrack)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// env is everything a command needs to read or change billtrack data.
type env struct {
	cfg      config.Config
	dataDir  string
	logger   *slog.Logger
	store    *store.Store
	state    *state.AppState
	profiles *profile.Service
	notes    *notify.Center

	logCloser io.Closer
}

// openEnv loads config, opens the log file and database, and builds the
// application state on top of them.
func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	envCfg, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = config.DataDir(cfg, envCfg)
	}
	level := flagLogLevel
	if level == "" {
		level = config.LogLevel(cfg, envCfg)
	}

	logger, closer, err := logging.Open(config.LogPath(cfg, dataDir), level)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	e := &env{cfg: cfg, dataDir: dataDir, logger: logger, logCloser: closer}

	e.store, err = store.Open(config.DBPath(dataDir))
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	e.state, err = state.New(e.store, state.WithLogger(logger))
	if err != nil {
		e.Close()
		return nil, err
	}

	e.profiles, err = profile.NewService(e.store, logger)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.notes = notify.New(config.NotificationTTL(cfg), cfg.Notifications.MaxVisible)
	logger.Debug("environment ready", "data_dir", dataDir, "level", level)
	return e, nil
}

// Close releases the database and log file.
func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("closing database", "err", err)
		}
	}
	if e.logCloser != nil {
		_ = e.logCloser.Close()
	}
}
