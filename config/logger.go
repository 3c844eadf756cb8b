package config

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootLogger is the process-wide logger that all session loggers derive
// from. Level defaults to info and can be raised or lowered with
// RM_LOG_LEVEL.
var RootLogger = NewLogger(GetEnvOrDefault(RM_LOG_LEVEL, "info"))

// NewLogger builds a JSON logger at the named level. Unrecognized levels
// fall back to info.
func NewLogger(level string) *zap.Logger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stdout"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// RandomID returns a short hex identifier, used to correlate log entries
// belonging to one request.
func RandomID() string {
	b := make([]byte, 8)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}
