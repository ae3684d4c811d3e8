// Package config loads the settings of the perf command line.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Environment variables overriding the configuration files.
const (
	EnvLedger   = "PERF_LEDGER"
	EnvCurrency = "PERF_CURRENCY"
	EnvLogLevel = "PERF_LOG_LEVEL"
)

// Config holds the settings of the perf command line.
type Config struct {
	Ledger            string       `toml:"ledger"`             // Path to the JSONL ledger file
	ReportingCurrency string       `toml:"reporting_currency"` // Currency of every report
	LogLevel          string       `toml:"log_level"`          // debug, info, warn or error
	Report            ReportConfig `toml:"report"`
}

// ReportConfig holds the report output settings.
type ReportConfig struct {
	Format string `toml:"format"` // "markdown" or "json"
}

// NewDefaultConfig returns a Config with the default settings.
func NewDefaultConfig() *Config {
	return &Config{
		Ledger:            "ledger.jsonl",
		ReportingCurrency: "EUR",
		LogLevel:          "warn",
		Report:            ReportConfig{Format: "markdown"},
	}
}

// LoadConfig loads the configuration files in order, later files overriding
// earlier ones. Missing files are skipped. A ".env" file in the working
// directory is loaded into the environment, then environment variables
// override the files.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// godotenv never overrides variables already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv(EnvLedger); v != "" {
		config.Ledger = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		config.ReportingCurrency = strings.ToUpper(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.LogLevel = strings.ToLower(v)
	}
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Report.Format {
	case "markdown", "json":
	default:
		return fmt.Errorf("invalid report format %q: want markdown or json", c.Report.Format)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
