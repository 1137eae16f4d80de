// Package config loads the optional ~/.habitexe.yaml settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DBPath overrides the database location. The HABITEXE_DB
	// environment variable wins over both this and the default.
	DBPath string `yaml:"db_path"`

	Theme  string       `yaml:"theme"` // "dark" or "light"
	Uplink UplinkConfig `yaml:"uplink"`
}

type UplinkConfig struct {
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func Default() Config {
	return Config{
		Theme: "dark",
		Uplink: UplinkConfig{
			Model:          "gemini-2.5-flash",
			BaseURL:        "https://generativelanguage.googleapis.com",
			TimeoutSeconds: 30,
		},
	}
}

// DefaultPath returns ~/.habitexe.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".habitexe.yaml"), nil
}

// Load reads the config file at path, layering it over defaults. A
// missing file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}
	if cfg.Uplink.Model == "" {
		cfg.Uplink.Model = "gemini-2.5-flash"
	}
	if cfg.Uplink.BaseURL == "" {
		cfg.Uplink.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Uplink.TimeoutSeconds <= 0 {
		cfg.Uplink.TimeoutSeconds = 30
	}
	return cfg, nil
}

// UplinkTimeout converts the configured seconds to a duration.
func (c Config) UplinkTimeout() time.Duration {
	return time.Duration(c.Uplink.TimeoutSeconds) * time.Second
}
