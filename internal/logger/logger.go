// Package logger builds the zap logger used across the Simply CLI.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger holds the process-wide zap logger. Log is a no-op until Init runs.
type Logger struct {
	Log *zap.Logger
}

// New returns a Logger backed by a no-op zap logger.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces Log with a logger writing to stderr at the given level.
// Production mode emits JSON; anything else emits console output.
func (l *Logger) Init(level string, production bool) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	if production {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}

	l.Log = zl
	return nil
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func (l *Logger) Sync() {
	_ = l.Log.Sync()
}
