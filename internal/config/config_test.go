package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		SQLiteDBPath:    "./data/myfi.db",
		ProviderAPIURL:  "http://localhost:3000",
		SaveQuietWindow: time.Second,
		LogLevel:        "info",
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SQLITE_DB_PATH", "PROVIDER_API_URL", "PROVIDER_PUBLISHABLE_KEY", "SAVE_QUIET_WINDOW", "SEED_DEMO_DATA", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.SQLiteDBPath != "./data/myfi.db" {
		t.Errorf("SQLiteDBPath = %s", cfg.SQLiteDBPath)
	}
	if cfg.ProviderAPIURL != "http://localhost:3000" {
		t.Errorf("ProviderAPIURL = %s", cfg.ProviderAPIURL)
	}
	if cfg.SaveQuietWindow != time.Second {
		t.Errorf("SaveQuietWindow = %v", cfg.SaveQuietWindow)
	}
	if cfg.SeedDemoData {
		t.Error("SeedDemoData should default to false")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SQLITE_DB_PATH", "/tmp/other.db")
	t.Setenv("PROVIDER_API_URL", "https://api.example.com")
	t.Setenv("PROVIDER_PUBLISHABLE_KEY", "pk_test_123")
	t.Setenv("SAVE_QUIET_WINDOW", "250ms")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.SQLiteDBPath != "/tmp/other.db" {
		t.Errorf("SQLiteDBPath = %s", cfg.SQLiteDBPath)
	}
	if cfg.ProviderAPIURL != "https://api.example.com" {
		t.Errorf("ProviderAPIURL = %s", cfg.ProviderAPIURL)
	}
	if cfg.ProviderPublishableKey != "pk_test_123" {
		t.Errorf("ProviderPublishableKey = %s", cfg.ProviderPublishableKey)
	}
	if cfg.SaveQuietWindow != 250*time.Millisecond {
		t.Errorf("SaveQuietWindow = %v", cfg.SaveQuietWindow)
	}
	if !cfg.SeedDemoData {
		t.Error("SeedDemoData not picked up")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestInvalidDurationFallsBackToDefault(t *testing.T) {
	t.Setenv("SAVE_QUIET_WINDOW", "soon")
	cfg := Load()
	if cfg.SaveQuietWindow != time.Second {
		t.Errorf("SaveQuietWindow = %v, want default 1s", cfg.SaveQuietWindow)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "empty db path",
			mutate:  func(c *Config) { c.SQLiteDBPath = "" },
			wantErr: "database path",
		},
		{
			name:    "bad provider scheme",
			mutate:  func(c *Config) { c.ProviderAPIURL = "ftp://example.com" },
			wantErr: "scheme",
		},
		{
			name:    "quiet window too short",
			mutate:  func(c *Config) { c.SaveQuietWindow = 10 * time.Millisecond },
			wantErr: "at least 100ms",
		},
		{
			name:    "quiet window too long",
			mutate:  func(c *Config) { c.SaveQuietWindow = 2 * time.Minute },
			wantErr: "at most 1 minute",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
