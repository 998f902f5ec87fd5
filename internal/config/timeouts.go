package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeoutConfig bounds every wait the suite performs against the storefront
type TimeoutConfig struct {
	Visibility      time.Duration
	ShortVisibility time.Duration
	Spinner         time.Duration
	NetworkIdle     time.Duration
	PageLoad        time.Duration
	Read            time.Duration
	PollInterval    time.Duration
}

// DefaultTimeouts returns the timeouts used when no overrides are set
func DefaultTimeouts() TimeoutConfig {
	return TimeoutConfig{
		Visibility:      5 * time.Second,
		ShortVisibility: 2 * time.Second,
		Spinner:         10 * time.Second,
		NetworkIdle:     10 * time.Second,
		PageLoad:        10 * time.Second,
		Read:            5 * time.Second,
		PollInterval:    100 * time.Millisecond,
	}
}

// LoadTimeoutConfig loads wait timeouts from environment variables, in milliseconds
func LoadTimeoutConfig(getenv func(string) string) (TimeoutConfig, error) {
	config := DefaultTimeouts()

	fields := []struct {
		key    string
		target *time.Duration
	}{
		{"VISIBILITY_TIMEOUT_MS", &config.Visibility},
		{"SHORT_VISIBILITY_TIMEOUT_MS", &config.ShortVisibility},
		{"SPINNER_TIMEOUT_MS", &config.Spinner},
		{"NETWORK_IDLE_TIMEOUT_MS", &config.NetworkIdle},
		{"PAGE_LOAD_TIMEOUT_MS", &config.PageLoad},
		{"READ_TIMEOUT_MS", &config.Read},
		{"POLL_INTERVAL_MS", &config.PollInterval},
	}
	for _, f := range fields {
		d, err := envMillis(getenv, f.key, *f.target)
		if err != nil {
			return TimeoutConfig{}, err
		}
		if d <= 0 {
			return TimeoutConfig{}, fmt.Errorf("%s must be positive", f.key)
		}
		*f.target = d
	}

	return config, nil
}

// WithDefaults replaces every non-positive timeout with its default
func (c TimeoutConfig) WithDefaults() TimeoutConfig {
	def := DefaultTimeouts()
	fill := func(v *time.Duration, d time.Duration) {
		if *v <= 0 {
			*v = d
		}
	}
	fill(&c.Visibility, def.Visibility)
	fill(&c.ShortVisibility, def.ShortVisibility)
	fill(&c.Spinner, def.Spinner)
	fill(&c.NetworkIdle, def.NetworkIdle)
	fill(&c.PageLoad, def.PageLoad)
	fill(&c.Read, def.Read)
	fill(&c.PollInterval, def.PollInterval)
	return c
}

// Millis converts a duration into the float milliseconds playwright expects
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func envMillis(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer number of milliseconds: %w", key, err)
	}
	if ms < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func envBool(getenv func(string) string, key string, def bool) (bool, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return v, nil
}
