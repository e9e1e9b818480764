// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and env on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"os"
	"path/filepath"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// StorePath is the backing leaderboard file. Empty means a file named
	// leaderboard.json next to the executable.
	StorePath string `koanf:"store_path"`

	// RateLimitRPS and RateLimitBurst bound POST /api/leaderboard.
	// RPS <= 0 disables limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":3000",
		StorePath:      "",
		RateLimitRPS:   50,
		RateLimitBurst: 100,
	}
}

// defaultStorePath resolves the backing file relative to the service's own
// location, falling back to the working directory when the executable path
// is unavailable.
func defaultStorePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "leaderboard.json"
	}
	return filepath.Join(filepath.Dir(exe), "leaderboard.json")
}
