// Package config holds runtime configuration for the estimator: where
// reference data lives, the optional tariff page to scrape at startup,
// and server settings. Values load from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	// DataDir holds the generated electricity price sheet.
	DataDir string `yaml:"data_dir"`

	// TariffURL, when set, is scraped for current electricity rates
	// during the startup refresh. Empty uses the built-in rates.
	TariffURL string `yaml:"tariff_url"`

	// ListenAddr is the HTTP listen address for serve mode.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:    "data",
		ListenAddr: ":8000",
		LogLevel:   "info",
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and environment variable overrides, in that order of precedence
// (later wins).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides config fields from DCCOST_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DCCOST_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("DCCOST_TARIFF_URL"); v != "" {
		cfg.TariffURL = v
	}
	if v := os.Getenv("DCCOST_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DCCOST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
