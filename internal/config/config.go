// Package config handles sqlorder configuration: an optional YAML file
// overlaid with SQLORDER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"sqlorder/internal/schema"
)

// FileName is the name of the project-local config file.
const FileName = "sqlorder.yaml"

// SchemaConfig describes where table metadata comes from.
type SchemaConfig struct {
	Driver string              `yaml:"driver,omitempty"` // sqlite3 or duckdb
	DSN    string              `yaml:"dsn,omitempty"`    // introspected when set
	Tables map[string][]string `yaml:"tables,omitempty"` // static tables, merged over introspected ones
}

// Config holds the CLI configuration.
type Config struct {
	LogLevel  string       `yaml:"log_level,omitempty"`  // debug, info, warn, error (default "info")
	LogFormat string       `yaml:"log_format,omitempty"` // text or json (default "text")
	Output    string       `yaml:"output,omitempty"`     // table or json; empty picks by terminal
	Schema    SchemaConfig `yaml:"schema,omitempty"`
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// StaticCatalog returns the tables declared directly in the config.
func (c *Config) StaticCatalog() *schema.Catalog {
	return schema.FromMap(c.Schema.Tables)
}

// HasIntrospection reports whether a database should be introspected.
func (c *Config) HasIntrospection() bool {
	return c.Schema.DSN != ""
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level %q: use debug, info, warn or error", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unsupported log format %q: use 'text' or 'json'", c.LogFormat)
	}
	if c.Output != "" && c.Output != "table" && c.Output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", c.Output)
	}
	switch c.Schema.Driver {
	case "", schema.DriverSQLite, schema.DriverDuckDB:
	default:
		return fmt.Errorf("unsupported schema driver %q: use %q or %q",
			c.Schema.Driver, schema.DriverSQLite, schema.DriverDuckDB)
	}
	if c.Schema.DSN != "" && c.Schema.Driver == "" {
		return errors.New("schema.driver is required when schema.dsn is set")
	}
	return nil
}

// Load reads the config file at path (skipped when path is empty), applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.Schema.DSN != "" && cfg.Schema.Driver == "" {
		cfg.Schema.Driver = schema.DriverSQLite
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.LogLevel, "SQLORDER_LOG_LEVEL")
	setFromEnv(&c.LogFormat, "SQLORDER_LOG_FORMAT")
	setFromEnv(&c.Output, "SQLORDER_OUTPUT")
	setFromEnv(&c.Schema.Driver, "SQLORDER_SCHEMA_DRIVER")
	setFromEnv(&c.Schema.DSN, "SQLORDER_SCHEMA_DSN")
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// ConfigDir returns the path to ~/.sqlorder/.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sqlorder")
}

// FindConfigFile returns the config file to use when none is given
// explicitly: ./sqlorder.yaml, then ~/.sqlorder/config.yaml. It returns ""
// when neither exists.
func FindConfigFile() string {
	candidates := []string{FileName}
	if dir := ConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "config.yaml"))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
