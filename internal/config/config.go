// Package config reads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds all application configuration.
type Config struct {
	Port         string
	LogLevel     zerolog.Level
	LogFormat    string // "json" or "console"
	ClientOrigin string
	Env          string

	Puzzle  PuzzleConfig
	Session SessionConfig
}

// PuzzleConfig selects and parses the puzzle source.
type PuzzleConfig struct {
	File   string // empty = embedded default
	Strict bool
	Title  string
}

// SessionConfig controls session cookies and expiry.
type SessionConfig struct {
	Secret        string
	CookieName    string
	TTL           time.Duration
	SweepInterval time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	ttl, err := getEnvDuration("SESSION_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	sweep, err := getEnvDuration("SESSION_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}
	strict, err := getEnvBool("PUZZLE_STRICT", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     lvl,
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "json")),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Env:          getEnv("APP_ENV", "development"),
		Puzzle: PuzzleConfig{
			File:   getEnv("PUZZLE_FILE", ""),
			Strict: strict,
			Title:  getEnv("PUZZLE_TITLE", ""),
		},
		Session: SessionConfig{
			Secret:        getEnv("SESSION_SECRET", "dev_secret_change_me"),
			CookieName:    getEnv("COOKIE_NAME", "ladder_session"),
			TTL:           ttl,
			SweepInterval: sweep,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET cannot be empty")
	}
	if c.IsProduction() && c.Session.Secret == "dev_secret_change_me" {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("COOKIE_NAME cannot be empty")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be > 0")
	}
	return nil
}

// IsProduction reports whether cookies should be Secure/SameSite=None.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s %q", key, value)
	}
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
		return d, nil
	}
	// Bare integers are minutes.
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return time.Duration(n) * time.Minute, nil
}
