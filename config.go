package shwary

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.shwary.com"
	defaultTimeout = 30 * time.Second
	apiVersionPath = "/api/v1"
)

// Config carries the merchant credentials and connection settings for a
// client. Build one with NewConfig or ConfigFromEnv; a zero Config is not
// usable.
type Config struct {
	MerchantID  string
	MerchantKey string
	BaseURL     string
	Timeout     time.Duration
	Sandbox     bool
}

// ConfigOption adjusts optional Config fields.
type ConfigOption func(*Config)

// WithBaseURL overrides the gateway base URL.
func WithBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithTimeout overrides the HTTP timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithSandbox toggles sandbox mode, routing payments to the simulated
// gateway environment.
func WithSandbox(sandbox bool) ConfigOption {
	return func(c *Config) {
		c.Sandbox = sandbox
	}
}

// NewConfig validates credentials and settings and applies defaults.
func NewConfig(merchantID, merchantKey string, opts ...ConfigOption) (*Config, error) {
	cfg := &Config{
		MerchantID:  strings.TrimSpace(merchantID),
		MerchantKey: strings.TrimSpace(merchantKey),
		BaseURL:     defaultBaseURL,
		Timeout:     defaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.MerchantID == "" || cfg.MerchantKey == "" {
		return nil, missingCredentials()
	}
	if cfg.Timeout < time.Second {
		return nil, errors.New("timeout must be at least 1 second")
	}

	cfg.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	return cfg, nil
}

// ConfigFromEnv builds a Config from SHWARY_* environment variables:
// SHWARY_MERCHANT_ID, SHWARY_MERCHANT_KEY (required), SHWARY_BASE_URL,
// SHWARY_TIMEOUT (seconds) and SHWARY_SANDBOX ("true"/"1").
func ConfigFromEnv() (*Config, error) {
	var opts []ConfigOption

	if baseURL := strings.TrimSpace(os.Getenv("SHWARY_BASE_URL")); baseURL != "" {
		opts = append(opts, WithBaseURL(baseURL))
	}
	if raw := strings.TrimSpace(os.Getenv("SHWARY_TIMEOUT")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse SHWARY_TIMEOUT: %w", err)
		}
		opts = append(opts, WithTimeout(time.Duration(seconds)*time.Second))
	}
	if raw := strings.TrimSpace(os.Getenv("SHWARY_SANDBOX")); raw != "" {
		opts = append(opts, WithSandbox(raw == "true" || raw == "1"))
	}

	return NewConfig(os.Getenv("SHWARY_MERCHANT_ID"), os.Getenv("SHWARY_MERCHANT_KEY"), opts...)
}

// APIURL returns the versioned API root, e.g.
// https://api.shwary.com/api/v1.
func (c *Config) APIURL() string {
	return c.BaseURL + apiVersionPath
}
