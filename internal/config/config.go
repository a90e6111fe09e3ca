// Package config provides application configuration for catalogctl.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds the catalogctl configuration.
type Config struct {
	BaseURL   string `json:"baseUrl"`             // catalog backend base URL
	Token     string `json:"token,omitempty"`     // bearer token, optional
	TimeoutMs int    `json:"timeoutMs,omitempty"` // per-request timeout
	CachePath string `json:"cachePath,omitempty"` // forest snapshot database
}

// Timeout returns the per-request timeout (default: 30s).
func (c Config) Timeout() time.Duration {
	if c.TimeoutMs > 0 {
		return time.Duration(c.TimeoutMs) * time.Millisecond
	}
	return 30 * time.Second
}

// Dir returns the path to the .catalogctl directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".catalogctl"), nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns the built-in defaults: a local backend and a cache file
// next to the config.
func Default() Config {
	cfg := Config{BaseURL: "http://localhost:8640"}
	if dir, err := Dir(); err == nil {
		cfg.CachePath = filepath.Join(dir, "snapshots.db")
	}
	return cfg
}

// Load reads the config file, falling back to defaults when it does not
// exist. Environment variables CATALOGCTL_API_URL, CATALOGCTL_TOKEN and
// CATALOGCTL_CACHE override the file.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		data, readErr := os.ReadFile(path)
		switch {
		case readErr == nil:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		case !os.IsNotExist(readErr):
			return Config{}, readErr
		}
	}

	if v := os.Getenv("CATALOGCTL_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CATALOGCTL_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("CATALOGCTL_CACHE"); v != "" {
		cfg.CachePath = v
	}

	return cfg, nil
}

// Save writes the config file, creating the directory as needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
