package config

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public StackDemo storefront the suite targets.
const DefaultBaseURL = "https://testathon.live"

// TargetConfig holds the location of the storefront under test
type TargetConfig struct {
	BaseURL string
}

// LoadTargetConfig loads the target storefront configuration from environment variables
func LoadTargetConfig(getenv func(string) string) (TargetConfig, error) {
	baseURL := strings.TrimSpace(getenv("BASE_URL"))
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return TargetConfig{}, fmt.Errorf("BASE_URL is not a valid URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return TargetConfig{}, fmt.Errorf("BASE_URL must be absolute, got %q", baseURL)
	}

	return TargetConfig{
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// URL joins a site-relative path onto the base URL
func (c TargetConfig) URL(path string) string {
	if path == "" {
		return c.BaseURL + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}
