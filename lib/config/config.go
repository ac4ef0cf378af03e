// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the console.
//
// Configuration is loaded from a single YAML file specified by:
//   - SENTINEL_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery, and environment
// variables do not override file values. The only expansion performed
// is ${HOME} and similar path variables for portability. Running with
// no config file at all is fine: every field has a working default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "20s" or "1m30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full console configuration.
type Config struct {
	// Server configures how the console reaches the operations service.
	Server ServerConfig `yaml:"server"`

	// Console configures interface behavior.
	Console ConsoleConfig `yaml:"console"`

	// Session configures credential persistence.
	Session SessionConfig `yaml:"session"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`
}

// ServerConfig configures the connection to the operations service.
type ServerConfig struct {
	// URL is the base URL of the service, without the /api prefix.
	// Default: http://localhost:8001
	URL string `yaml:"url"`

	// RequestTimeout bounds each API request.
	// Default: 15s
	RequestTimeout Duration `yaml:"request_timeout"`
}

// ConsoleConfig configures interface behavior.
type ConsoleConfig struct {
	// RefreshInterval is the cadence of background data refresh for
	// the dashboard and security views.
	// Default: 20s
	RefreshInterval Duration `yaml:"refresh_interval"`

	// ShowDemoHint shows the demo credential hint on the login form.
	// Default: true
	ShowDemoHint bool `yaml:"show_demo_hint"`
}

// SessionConfig configures credential persistence.
type SessionConfig struct {
	// File is where the session token is saved between runs.
	// Default: ${HOME}/.cache/sentinel/session.json
	File string `yaml:"file"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	// Output is a file path for the debug log. Empty disables file
	// logging; the console never logs to the terminal it draws on.
	Output string `yaml:"output"`

	// Level is the minimum level written: debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Server: ServerConfig{
			URL:            "http://localhost:8001",
			RequestTimeout: Duration(15 * time.Second),
		},
		Console: ConsoleConfig{
			RefreshInterval: Duration(20 * time.Second),
			ShowDemoHint:    true,
		},
		Session: SessionConfig{
			File: filepath.Join(homeDir, ".cache", "sentinel", "session.json"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the SENTINEL_CONFIG environment
// variable when set, falling back to defaults when it is not.
func Load() (*Config, error) {
	configPath := os.Getenv("SENTINEL_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config from %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// path-valued fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Session.File = expandVars(c.Session.File, vars)
	c.Log.Output = expandVars(c.Log.Output, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.URL == "" {
		errs = append(errs, fmt.Errorf("server.url is required"))
	}
	if c.Server.RequestTimeout.Std() <= 0 {
		errs = append(errs, fmt.Errorf("server.request_timeout must be positive"))
	}
	if c.Console.RefreshInterval.Std() < time.Second {
		errs = append(errs, fmt.Errorf("console.refresh_interval must be at least 1s"))
	}
	if c.Session.File == "" {
		errs = append(errs, fmt.Errorf("session.file is required"))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
