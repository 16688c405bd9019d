// Package config loads wealthview settings from a TOML file, a .env file,
// and WEALTHVIEW_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all wealthview configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Export     ExportConfig     `toml:"export"`
	Serve      ServeConfig      `toml:"serve"`
	TUI        TUIConfig        `toml:"tui"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir  string `toml:"data_dir,omitempty" env:"WEALTHVIEW_DATA_DIR"`
	Series   string `toml:"series,omitempty" env:"WEALTHVIEW_SERIES"`
	Title    string `toml:"title"`
	LogLevel string `toml:"log_level" env:"WEALTHVIEW_LOG_LEVEL"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme    string `toml:"theme" env:"WEALTHVIEW_THEME"`
	Currency string `toml:"currency" env:"WEALTHVIEW_CURRENCY"`
}

// ExportConfig holds defaults for the export command.
type ExportConfig struct {
	Format string `toml:"format"`
	Dir    string `toml:"dir,omitempty"`
}

// ServeConfig holds settings for the HTTP service.
type ServeConfig struct {
	Addr           string `toml:"addr" env:"WEALTHVIEW_SERVE_ADDR"`
	ReloadSchedule string `toml:"reload_schedule" env:"WEALTHVIEW_RELOAD_SCHEDULE"`
	EventsBuffer   int    `toml:"events_buffer"`
}

// TUIConfig holds dashboard refresh settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Title:    "Wealth Dashboard",
			LogLevel: "warn",
		},
		Appearance: AppearanceConfig{
			Theme:    "flexoki-dark",
			Currency: "$",
		},
		Export: ExportConfig{
			Format: "csv",
		},
		Serve: ServeConfig{
			Addr:           "127.0.0.1:8787",
			ReloadSchedule: "@every 30s",
			EventsBuffer:   200,
		},
		TUI: TUIConfig{
			AutoRefresh:        true,
			RefreshIntervalSec: 30,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wealthview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wealthview")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant directory scanned for series files.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "wealthview", "series")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "wealthview", "series")
}

// DataDir returns the configured data directory, or the default.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return DefaultDataDir()
}

// Load reads the config file, then a .env file in the working directory, then
// the environment. A missing config file yields defaults.
func Load() (Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path and applies environment overrides.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
