package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a zap logger at the given level ("debug", "info", "warn",
// "error"). Development loggers write human-readable console output;
// production loggers write JSON.
func New(level string, development bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = lvl
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
