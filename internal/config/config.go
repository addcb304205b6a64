// Package config provides configuration management for the list editor.
//
// Config file locations (priority order):
//  1. $LISTEDITOR_CONFIG
//  2. ./listeditor.yaml
//  3. $XDG_CONFIG_HOME/listeditor/config.yaml
//  4. ~/.config/listeditor/config.yaml
//  5. /etc/listeditor/config.yaml
//
// Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultAddr         = ":3000"
	DefaultDatabasePath = "./listeditor.db"
	DefaultStrategy     = "list"
	DefaultPadding      = 60.0
	DefaultColumns      = 4
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultReadTimeout  = 15 * time.Second
	// SSE streams stay open, so writes are not bounded by default
	DefaultWriteTimeout = 0
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	// Keys absent from the file keep their default, so explicit zeros survive
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  Duration(DefaultReadTimeout),
			WriteTimeout: Duration(DefaultWriteTimeout),
		},
		Database: DatabaseConfig{Path: DefaultDatabasePath},
		Layout: LayoutConfig{
			Strategy: DefaultStrategy,
			Padding:  DefaultPadding,
			Columns:  DefaultColumns,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// applyDefaults normalizes case and refills settings set to an empty string.
// Numeric zeros are kept as written.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Layout.Strategy == "" {
		c.Layout.Strategy = DefaultStrategy
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	c.Log.Format = strings.ToLower(c.Log.Format)
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its allowed values
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Server: %s, Database: %s\n", c.Server.Addr, c.Database.Path)
	summary += fmt.Sprintf("Layout: %s (padding %.0f", c.Layout.Strategy, c.Layout.Padding)
	if c.Layout.Strategy == "grid" {
		summary += fmt.Sprintf(", %d columns", c.Layout.Columns)
	}
	summary += ")"
	if c.Seed.Path != "" {
		summary += fmt.Sprintf("\nSeed: %s (watch: %v)", c.Seed.Path, c.Seed.Watch)
	}
	return summary
}
