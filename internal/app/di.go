package app

import (
	"log/slog"
	"os"

	"marcap/internal/archive"
	"marcap/internal/slogx"
	"marcap/internal/yearfile"
)

// ProvideConfig loads config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadConfig()
}

// ProvideLogger builds the stderr logger from config and installs it as slog default (for Wire).
func ProvideLogger(cfg *Config) *slog.Logger {
	logger := slogx.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return logger
}

// ProvideFormat resolves the year file format (for Wire).
// Returns error if Format is not supported.
func ProvideFormat(cfg *Config) (yearfile.Format, error) {
	return yearfile.NewFormat(cfg.Format)
}

// ProvideArchive opens the archive over DataDir (for Wire).
func ProvideArchive(cfg *Config, format yearfile.Format, logger *slog.Logger) *archive.Archive {
	return archive.New(cfg.DataDir, format, logger)
}
