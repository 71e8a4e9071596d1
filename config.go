package taskpool

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds configuration for a pool built with New.
type Config struct {
	// Workers is the number of worker goroutines started by default.
	// Values below 1 are clamped to 1 at start time.
	Workers int

	// DrainTimeout is the ceiling a graceful shutdown waits for queued
	// jobs to drain before closing the queue anyway.
	DrainTimeout time.Duration

	// DrainPollInterval is how often the drain wait re-checks queue
	// emptiness.
	DrainPollInterval time.Duration

	// LogLevel is the minimum level for the logger built by the demo
	// command: "debug", "info", "warn" or "error".
	LogLevel string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           runtime.NumCPU(),
		DrainTimeout:      1 * time.Second,
		DrainPollInterval: 5 * time.Millisecond,
		LogLevel:          "info",
	}
}

// fileConfig is the on-disk shape of Config. Durations are encoded as
// strings in time.ParseDuration syntax.
type fileConfig struct {
	Workers           int    `yaml:"workers" json:"workers"`
	DrainTimeout      string `yaml:"drain_timeout" json:"drain_timeout"`
	DrainPollInterval string `yaml:"drain_poll_interval" json:"drain_poll_interval"`
	LogLevel          string `yaml:"log_level" json:"log_level"`
}

// LoadConfig reads a YAML or JSON config file, selected by extension, and
// applies it over DefaultConfig. Fields missing from the file keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse JSON config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedConfig, ext)
	}

	cfg := DefaultConfig()
	if fc.Workers > 0 {
		cfg.Workers = fc.Workers
	}
	if fc.DrainTimeout != "" {
		d, err := time.ParseDuration(fc.DrainTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse drain_timeout: %w", err)
		}
		cfg.DrainTimeout = d
	}
	if fc.DrainPollInterval != "" {
		d, err := time.ParseDuration(fc.DrainPollInterval)
		if err != nil {
			return Config{}, fmt.Errorf("parse drain_poll_interval: %w", err)
		}
		cfg.DrainPollInterval = d
	}
	if fc.LogLevel != "" {
		if _, err := ParseLevel(fc.LogLevel); err != nil {
			return Config{}, err
		}
		cfg.LogLevel = fc.LogLevel
	}
	return cfg, nil
}

// ParseLevel converts a config log level string to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, s)
}
