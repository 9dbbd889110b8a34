// Package observability provides structured logging for the sheet tools.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/config"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
)

// NewLogger creates a structured logger from the given logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Sheet output goes to stdout; keep logs off it.
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// CharacterFields returns the fields that identify a sheet in log lines.
func CharacterFields(c character.Character) []zap.Field {
	return []zap.Field{
		zap.String("class", string(c.Details.Class)),
		zap.Int("nex", c.Details.NEX),
		zap.Int("level", c.Level()),
		zap.String("visual_state", string(c.VisualState())),
	}
}

// ForCharacter returns a child of logger tagged with CharacterFields(c).
//
// Precondition: logger must be non-nil.
func ForCharacter(logger *zap.Logger, c character.Character) *zap.Logger {
	return logger.With(CharacterFields(c)...)
}
