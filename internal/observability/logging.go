// Package observability provides logging for the encounter engine and its
// command-line tools.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/encounter/internal/config"
	"github.com/cory-johannsen/encounter/internal/game/combat"
)

// NewLogger creates a structured logger from the given logging configuration.
// The console format omits stack traces below error level.
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
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named("encounter"), nil
}

// TurnRecordFields renders one history entry as structured log fields.
func TurnRecordFields(r combat.TurnRecord) []zap.Field {
	fields := []zap.Field{
		zap.Int("round", r.Round),
		zap.Stringer("action", r.Action),
		zap.Bool("success", r.Success),
		zap.String("summary", r.Summary),
	}
	if r.ActorID != "" {
		fields = append(fields, zap.String("actor", r.ActorID))
	}
	if len(r.Targets) > 0 {
		fields = append(fields, zap.Strings("targets", r.Targets))
	}
	return fields
}

// LogHistory writes every record at info level, in order.
func LogHistory(logger *zap.Logger, history []combat.TurnRecord) {
	for _, r := range history {
		logger.Info("turn", TurnRecordFields(r)...)
	}
}
