// Package logging builds the application's zap logger from configuration.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	Level   string
	Format  string // "json" or "console"
	LogFile string
	Verbose bool
}

// New creates a logger that writes to stderr and, when set, to LogFile.
// Verbose forces debug level.
func New(cfg Config) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if cfg.Level != "" {
		parsed, err := zap.ParseAtomicLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	if cfg.Verbose {
		level.SetLevel(zap.DebugLevel)
	}
	zapConfig.Level = level

	if cfg.Format == "json" {
		zapConfig.Encoding = "json"
	} else {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	}
	zapConfig.DisableStacktrace = true
	zapConfig.Sampling = nil

	zapConfig.OutputPaths = []string{"stderr"}
	if cfg.LogFile != "" {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, cfg.LogFile)
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
