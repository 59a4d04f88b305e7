// Package config loads client settings from the environment and an optional
// YAML file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	"github.com/him0/swift-Sample-GitHubSearch-2016/internal/logger"
)

// Config holds client settings. Defaults come from the env tags.
type Config struct {
	// BaseURL is the API root. ENV: GHSEARCH_BASE_URL
	BaseURL string `env:"GHSEARCH_BASE_URL,default=https://api.github.com" yaml:"base_url"`
	// Token is sent as "Authorization: token <Token>" when set. ENV: GHSEARCH_TOKEN
	Token string `env:"GHSEARCH_TOKEN" yaml:"token"`
	// Timeout bounds one HTTP exchange; 0 disables it. ENV: GHSEARCH_TIMEOUT
	Timeout time.Duration `env:"GHSEARCH_TIMEOUT,default=10s" yaml:"timeout"`
	// LogLevel is one of debug, info, warning, error. ENV: GHSEARCH_LOG_LEVEL
	LogLevel string `env:"GHSEARCH_LOG_LEVEL,default=info" yaml:"log_level"`
	// PerPage is the search page size, 1..100. ENV: GHSEARCH_PER_PAGE
	PerPage int `env:"GHSEARCH_PER_PAGE,default=30" yaml:"per_page"`
	// UserAgent is required by the API. ENV: GHSEARCH_USER_AGENT
	UserAgent string `env:"GHSEARCH_USER_AGENT,default=ghsearch" yaml:"user_agent"`
	// MaxBodyBytes bounds response bodies. ENV: GHSEARCH_MAX_BODY_BYTES
	MaxBodyBytes int64 `env:"GHSEARCH_MAX_BODY_BYTES,default=16777216" yaml:"max_body_bytes"`
}

// FromEnv decodes the environment, applying tag defaults.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}
	return cfg, nil
}

// Load reads the environment and then overlays the YAML file at path, so
// keys present in the file win. An empty path skips the file. The result is
// validated.
func Load(path string) (Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and the base URL.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Base(); err != nil {
		errs = append(errs, err)
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if c.PerPage < 1 || c.PerPage > 100 {
		errs = append(errs, fmt.Errorf("per_page must be within 1..100, got %d", c.PerPage))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.UserAgent == "" {
		errs = append(errs, errors.New("user_agent must not be empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// Base parses BaseURL; it must be an absolute http or https URL.
func (c Config) Base() (*url.URL, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base_url %q must be an absolute http(s) URL", c.BaseURL)
	}
	return u, nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.Token != "" {
		c.Token = "[redacted]"
	}
	return c
}
