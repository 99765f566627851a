package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

const adminLeadViewPath = "/admin/crm/leads/view"

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// CRMConfig groups the settings needed to talk to the upstream CRM.
type CRMConfig struct {
	BaseURL       string        `env:"CRM_BASE_URL"`
	Auth          string        `env:"CRM_AUTH"`
	AdminURL      string        `env:"CRM_ADMIN_URL"`
	Timeout       time.Duration `env:"CRM_TIMEOUT" envDefault:"15s"`
	LeadFirstName string        `env:"LEAD_FIRST_NAME" envDefault:"Web"`
	LeadLastName  string        `env:"LEAD_LAST_NAME" envDefault:"Lead"`
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	CRM      CRMConfig

	RateLimitCheck  RateLimitConfig
	RateLimitCreate RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.CRM.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.CRM.BaseURL), "/")
	if cfg.CRM.BaseURL == "" {
		return nil, errors.New("CRM_BASE_URL is required")
	}
	if strings.TrimSpace(cfg.CRM.Auth) == "" {
		return nil, errors.New("CRM_AUTH is required")
	}
	if cfg.CRM.Timeout <= 0 {
		cfg.CRM.Timeout = 15 * time.Second
	}

	cfg.CRM.AdminURL = strings.TrimRight(strings.TrimSpace(cfg.CRM.AdminURL), "/")
	if cfg.CRM.AdminURL == "" {
		adminURL, err := deriveAdminURL(cfg.CRM.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid CRM_BASE_URL value: %w", err)
		}
		cfg.CRM.AdminURL = adminURL
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_CHECK", "60/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CHECK value: %w", err)
	}
	cfg.RateLimitCheck = rl

	rl, err = parseRateLimit(getEnv("RATE_LIMIT_CREATE", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CREATE value: %w", err)
	}
	cfg.RateLimitCreate = rl

	return cfg, nil
}

// deriveAdminURL points at the lead view page on the CRM host serving the API.
func deriveAdminURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("expected absolute url, got %q", baseURL)
	}
	return u.Scheme + "://" + u.Host + adminLeadViewPath, nil
}

// parseRateLimit accepts <requests>/<unit>. A zero request count disables the limiter.
func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests < 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
