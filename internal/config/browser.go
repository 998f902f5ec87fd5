package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Supported browser engines
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// ErrUnsupportedBrowser is returned when BROWSER names an engine playwright does not ship
var ErrUnsupportedBrowser = errors.New("unsupported browser")

// BrowserConfig holds configuration for launching the browser under playwright
type BrowserConfig struct {
	Name         string
	Headless     bool
	SlowMo       time.Duration
	ArtifactsDir string
}

// LoadBrowserConfig loads browser launch configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (BrowserConfig, error) {
	config := BrowserConfig{
		Name:         strings.ToLower(strings.TrimSpace(getenv("BROWSER"))),
		Headless:     true,
		ArtifactsDir: getenv("ARTIFACTS_DIR"),
	}

	switch config.Name {
	case "":
		config.Name = BrowserChromium
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return BrowserConfig{}, fmt.Errorf("%w: %q", ErrUnsupportedBrowser, config.Name)
	}

	headless, err := envBool(getenv, "HEADLESS", true)
	if err != nil {
		return BrowserConfig{}, err
	}
	config.Headless = headless

	slowMo, err := envMillis(getenv, "SLOW_MO_MS", 0)
	if err != nil {
		return BrowserConfig{}, err
	}
	config.SlowMo = slowMo

	if config.ArtifactsDir == "" {
		config.ArtifactsDir = "artifacts"
	}

	return config, nil
}
