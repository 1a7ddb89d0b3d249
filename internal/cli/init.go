// Package cli consolidates the initialization steps shared by entry
// points: env loading, logging, configuration and the local state
// database.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"myfi/internal/localstore"
	applog "myfi/internal/log"
)

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the component logger at the configured level and
// installs it as the process default.
func SetupLogger(level string) *applog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	logger := applog.New(l)
	applog.SetDefault(logger)
	return logger
}

// OpenLocalStore opens the state database or exits the process.
func OpenLocalStore(logger *applog.Logger, path string) *localstore.DB {
	db, err := localstore.Open(path)
	if err != nil {
		logger.Error("failed to open local state database", "error", err, "path", path)
		os.Exit(1)
	}
	return db
}
