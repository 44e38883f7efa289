// Package logging sets up the run log.
package logging

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options describe the log file.
type Options struct {
	Path   string
	Level  string // zap level name, e.g. "debug"
	Format string // "json" or "console"
	RunID  string
}

// Open removes any previous log at opts.Path, reopens it in append mode and
// returns a logger writing to it. The returned function syncs and closes
// the file.
func Open(opts Options) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	if err := os.Remove(opts.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("remove old log: %w", err)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	logger := New(zapcore.Lock(f), level, opts.Format)
	if opts.RunID != "" {
		logger = logger.With(zap.String("run_id", opts.RunID))
	}

	closer := func() error {
		_ = logger.Sync()
		return f.Close()
	}
	return logger, closer, nil
}

// New returns a logger writing to w at the given level.
func New(w zapcore.WriteSyncer, level zapcore.Level, format string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	return zap.New(zapcore.NewCore(enc, w, level))
}
