// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	Scope   ScopeConfig   `toml:"scope"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

// ScopeConfig is the default (branch, class, year) selection.
// Command-line flags override it per invocation.
type ScopeConfig struct {
	Branch string `toml:"branch"`
	Class  string `toml:"class"`
	Year   string `toml:"year"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Driver string `toml:"driver"`  // "sqlite" or "postgres"
	DBPath string `toml:"db_path"` // sqlite file
	DSN    string `toml:"dsn"`     // postgres connection string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // trace, debug, info, warn, error
	Format string `toml:"format"` // "json" or "pretty"
	File   string `toml:"file"`   // empty disables logging
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme    string `toml:"theme"`     // mocha, macchiato, frappe, latte, light
	ReadOnly bool   `toml:"read_only"` // parent dashboard: view only
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DBPath: defaultDBPath(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "classboard.db"
	}
	return filepath.Join(home, ".local", "share", "classboard", "classboard.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "classboard", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path, reading a .env
// file in the working directory if present.
func LoadFrom(path string) (*Config, error) {
	return LoadFiles(path, ".env")
}

// LoadFiles starts with defaults, overlays the TOML file if it exists,
// loads envPath into the process environment (existing variables win),
// then applies env overrides.
func LoadFiles(path, envPath string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := loadDotEnv(envPath); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// loadDotEnv loads KEY=VALUE pairs from path without overriding variables
// already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CLASSBOARD_BRANCH"); v != "" {
		cfg.Scope.Branch = v
	}
	if v := os.Getenv("CLASSBOARD_CLASS"); v != "" {
		cfg.Scope.Class = v
	}
	if v := os.Getenv("CLASSBOARD_YEAR"); v != "" {
		cfg.Scope.Year = v
	}

	if v := os.Getenv("CLASSBOARD_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("CLASSBOARD_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("CLASSBOARD_DSN"); v != "" {
		cfg.Storage.DSN = v
	}

	if v := os.Getenv("CLASSBOARD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CLASSBOARD_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("CLASSBOARD_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	if v := os.Getenv("CLASSBOARD_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("CLASSBOARD_READ_ONLY"); v != "" {
		ro, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CLASSBOARD_READ_ONLY: %w", err)
		}
		cfg.UI.ReadOnly = ro
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set for the sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("dsn must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q (want %q or %q)", c.Storage.Driver, DriverSQLite, DriverPostgres)
	}

	switch c.Log.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("log format must be \"json\" or \"pretty\", got %q", c.Log.Format)
	}
	return nil
}

// HasScope returns true if a full default scope is configured.
func (c *Config) HasScope() bool {
	return c.Scope.Branch != "" && c.Scope.Class != "" && c.Scope.Year != ""
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
