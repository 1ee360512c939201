// Package dlogger exposes a simple zap logger, with log levels
package dlogger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelInfo sets the log level to info
	LogLevelInfo = "info"

	// LogLevelDebug sets the log level to debug
	LogLevelDebug = "debug"

	// LogLevelWarn sets the log level to warn
	LogLevelWarn = "warn"

	// LogLevelError sets the log level to error
	LogLevelError = "error"

	// LogLevelNone sets logger to no logging
	LogLevelNone = "none"
)

// DefaultOutput is where logs go when no output path is specified
const DefaultOutput = "stderr"

// GetLogger returns a zap logger with the specified level.
//
// Logs are written to the given output paths (files or "stderr"/"stdout"),
// or to stderr when none is given. A file output gets JSON lines, while
// the terminal gets a console encoding.
func GetLogger(logLevel string, outputs ...string) (*zap.Logger, error) {
	if logLevel == LogLevelNone {
		return zap.NewNop(), nil
	}
	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(logLevel))
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	if len(outputs) == 0 {
		outputs = []string{DefaultOutput}
	}
	if isTerminalOnly(outputs) {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	zapConfig.OutputPaths = outputs
	zapConfig.ErrorOutputPaths = []string{DefaultOutput}
	zapConfig.DisableStacktrace = lvl > zapcore.DebugLevel

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// MustGetLogger returns a zap logger with the specified level or panics
func MustGetLogger(logLevel string, outputs ...string) *zap.Logger {
	l, err := GetLogger(logLevel, outputs...)
	if err != nil {
		panic(err)
	}
	return l
}

func isTerminalOnly(outputs []string) bool {
	for _, o := range outputs {
		if o != "stderr" && o != "stdout" {
			return false
		}
	}
	return true
}
