// Package logging wraps go.uber.org/zap behind a four-level call shape
// (Debugf/Infof/Warnf/Errorf), giving every analyzer call site structured
// fields and a level configurable via LOCTREE_LOG_LEVEL — independent of a
// single global verbose bool, which isn't expressive enough for the
// diagnostics list the snapshot carries.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger *zap.SugaredLogger
)

func init() {
	Configure(os.Getenv("LOCTREE_LOG_LEVEL"))
}

// Configure (re)builds the global logger at the given level ("debug",
// "info", "warn", "error"; defaults to "warn"). Safe to call concurrently
// with logging calls.
func Configure(level string) {
	lvl := zapcore.WarnLevel
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "info":
		lvl = zapcore.InfoLevel
	case "error":
		lvl = zapcore.ErrorLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "" // stderr diagnostics, not a structured log shipper

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}

	mu.Lock()
	logger = l.Sugar()
	mu.Unlock()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debugf logs a ParseError-class diagnostic; per spec these never surface
// above debug level.
func Debugf(format string, args ...interface{}) { get().Debugf(format, args...) }

// Infof logs routine progress (files analyzed, snapshot written, ...).
func Infof(format string, args ...interface{}) { get().Infof(format, args...) }

// Warnf logs a recoverable, never-fatal diagnostic (an unreadable file, a
// discarded snapshot).
func Warnf(format string, args ...interface{}) { get().Warnf(format, args...) }

// Errorf always logs, regardless of configured level.
func Errorf(format string, args ...interface{}) { get().Errorf(format, args...) }

// Sync flushes any buffered log entries; call before process exit.
func Sync() {
	_ = get().Sync()
}
