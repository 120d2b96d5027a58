// Package config loads and saves the billtrack TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Environment overrides.
const (
	EnvPrefix   = "billtrack"
	EnvDataDir  = "BILLTRACK_DATA_DIR"
	EnvLogLevel = "BILLTRACK_LOG_LEVEL"
)

// Env holds the BILLTRACK_* overrides. They win over the config file.
type Env struct {
	DataDir  string `envconfig:"DATA_DIR"`
	LogLevel string `envconfig:"LOG_LEVEL"`
}

// LoadEnv reads the BILLTRACK_* variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return e, fmt.Errorf("reading environment: %w", err)
	}
	return e, nil
}

// Config holds all billtrack configuration.
type Config struct {
	General       GeneralConfig       `toml:"general"`
	Appearance    AppearanceConfig    `toml:"appearance"`
	Notifications NotificationsConfig `toml:"notifications"`
	Log           LogConfig           `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir string `toml:"data_dir,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// MaxNotificationTTLSec is the longest accepted notification lifetime.
const MaxNotificationTTLSec = 3600

// NotificationsConfig controls toast lifetime.
type NotificationsConfig struct {
	TTLSec     int `toml:"ttl_sec" validate:"gte=0,lte=3600"`
	MaxVisible int `toml:"max_visible" validate:"gte=1,lte=20"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Notifications: NotificationsConfig{
			TTLSec:     6,
			MaxVisible: 4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "billtrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "billtrack")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

var validate = validator.New()

// Validate checks value ranges that TOML decoding cannot.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Save validates cfg and writes it to disk.
func Save(cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DataDir returns where the database lives: env var, then config, then
// $XDG_DATA_HOME/billtrack.
func DataDir(cfg Config, env Env) string {
	if dir := env.DataDir; dir != "" {
		return dir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "billtrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "billtrack")
}

// DBPath returns the database file path under dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "billtrack.db")
}

// LogPath returns the log file path: configured, or billtrack.log in dataDir.
func LogPath(cfg Config, dataDir string) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return filepath.Join(dataDir, "billtrack.log")
}

// LogLevel returns the log level, env var first.
func LogLevel(cfg Config, env Env) string {
	if lvl := env.LogLevel; lvl != "" {
		return lvl
	}
	return cfg.Log.Level
}

// NotificationTTL returns the toast lifetime; zero disables expiry.
func NotificationTTL(cfg Config) time.Duration {
	if cfg.Notifications.TTLSec <= 0 {
		return 0
	}
	return time.Duration(cfg.Notifications.TTLSec) * time.Second
}
