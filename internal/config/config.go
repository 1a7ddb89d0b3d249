package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Local state database
	SQLiteDBPath string

	// Bank-data provider
	ProviderAPIURL         string
	ProviderPublishableKey string

	// Persistence
	SaveQuietWindow time.Duration

	// First-run seeding
	SeedDemoData bool

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/myfi.db"),

		ProviderAPIURL:         getEnv("PROVIDER_API_URL", "http://localhost:3000"),
		ProviderPublishableKey: getEnv("PROVIDER_PUBLISHABLE_KEY", ""),

		SaveQuietWindow: getEnvDuration("SAVE_QUIET_WINDOW", time.Second),

		SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLite database path cannot be empty")
	}

	if c.ProviderAPIURL != "" {
		if parsed, err := url.Parse(c.ProviderAPIURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid provider API URL '%s': %v", c.ProviderAPIURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errs = append(errs, fmt.Sprintf("invalid provider API URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}
	}

	if c.SaveQuietWindow < 100*time.Millisecond {
		errs = append(errs, fmt.Sprintf("invalid save quiet window %v: must be at least 100ms", c.SaveQuietWindow))
	} else if c.SaveQuietWindow > time.Minute {
		errs = append(errs, fmt.Sprintf("invalid save quiet window %v: must be at most 1 minute", c.SaveQuietWindow))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
