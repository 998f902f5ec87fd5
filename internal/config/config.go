package config

import (
	"fmt"
	"strings"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// LoadLogConfig loads logging configuration from environment variables
func LoadLogConfig(getenv func(string) string) (LogConfig, error) {
	config := LogConfig{
		Level:  strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL"))),
		Format: strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT"))),
	}
	if config.Level == "" {
		config.Level = "info"
	}
	switch config.Format {
	case "":
		config.Format = "text"
	case "text", "json":
	default:
		return LogConfig{}, fmt.Errorf("LOG_FORMAT must be text or json, got %q", config.Format)
	}
	return config, nil
}

// Config aggregates everything the suite and the CLI need
type Config struct {
	Target   TargetConfig
	Browser  BrowserConfig
	Timeouts TimeoutConfig
	Log      LogConfig
}

// Load reads the full configuration through getenv
func Load(getenv func(string) string) (*Config, error) {
	target, err := LoadTargetConfig(getenv)
	if err != nil {
		return nil, err
	}
	browser, err := LoadBrowserConfig(getenv)
	if err != nil {
		return nil, err
	}
	timeouts, err := LoadTimeoutConfig(getenv)
	if err != nil {
		return nil, err
	}
	log, err := LoadLogConfig(getenv)
	if err != nil {
		return nil, err
	}
	return &Config{
		Target:   target,
		Browser:  browser,
		Timeouts: timeouts,
		Log:      log,
	}, nil
}
