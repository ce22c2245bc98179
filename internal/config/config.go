// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	FetcherPath   string        `env:"FETCHER_PATH" envDefault:"python3"`
	FetcherScript string        `env:"FETCHER_SCRIPT" envDefault:"download_manager.py"`
	SourcesPath   string        `env:"SOURCES_PATH" envDefault:"sources.json"`
	StateDir      string        `env:"STATE_DIR" envDefault:"downloads"`
	OutputRoot    string        `env:"OUTPUT_ROOT" envDefault:"Novels"`
	DatabasePath  string        `env:"DATABASE_PATH" envDefault:"library.db"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	PollInterval  time.Duration `env:"POLL_INTERVAL" envDefault:"500ms"`
	SaveInterval  time.Duration `env:"SAVE_INTERVAL" envDefault:"5s"`
	MinFreeDiskMB uint64        `env:"MIN_FREE_DISK_MB" envDefault:"256"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.FetcherPath == "" {
		return fmt.Errorf("FETCHER_PATH cannot be empty")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	logLevel := strings.ToLower(c.LogLevel)
	isValidLevel := false
	for _, level := range validLogLevels {
		if logLevel == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("invalid log level %q, must be one of: %v", c.LogLevel, validLogLevels)
	}

	if c.StateDir == "" {
		return fmt.Errorf("STATE_DIR cannot be empty")
	}

	if c.OutputRoot == "" {
		return fmt.Errorf("OUTPUT_ROOT cannot be empty")
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive, got: %s", c.PollInterval)
	}

	if c.SaveInterval <= 0 {
		return fmt.Errorf("SAVE_INTERVAL must be positive, got: %s", c.SaveInterval)
	}

	return nil
}

// FetcherCommand returns the argv prefix used to invoke the external
// fetcher. The script element is omitted when the fetcher is a plain
// executable.
func (c *Config) FetcherCommand() []string {
	if c.FetcherScript == "" {
		return []string{c.FetcherPath}
	}
	return []string{c.FetcherPath, c.FetcherScript}
}
