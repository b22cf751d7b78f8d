// Package config loads process configuration for the CLI and MCP
// glue. The store itself never reads configuration; everything here
// resolves to plain values handed to it.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultBudget is the number of contexts returned by init when the
// caller supplies none.
const DefaultBudget = 10

// Config holds the tunables the glue layers care about.
type Config struct {
	DBPath        string `yaml:"db_path"`
	DefaultBudget int    `yaml:"default_budget"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DBPath:        filepath.Join(home, ".ctxstore", "contexts.db"),
		DefaultBudget: DefaultBudget,
	}
}

func configPath() string {
	if p := os.Getenv("CTXSTORE_CONFIG"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ctxstore", "config.yaml")
}

// Load reads the config file and applies environment overrides.
// A missing or unreadable file falls back to defaults: configuration
// is optional and its absence is not an error.
func Load() *Config {
	cfg := Default()

	if b, err := os.ReadFile(configPath()); err == nil {
		var file Config
		if yaml.Unmarshal(b, &file) == nil {
			if file.DBPath != "" {
				cfg.DBPath = file.DBPath
			}
			if file.DefaultBudget > 0 {
				cfg.DefaultBudget = file.DefaultBudget
			}
		}
	}

	if env := os.Getenv("CTXSTORE_DB"); env != "" {
		cfg.DBPath = env
	}

	return cfg
}
