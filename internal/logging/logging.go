// Package logging builds the zap loggers used across the application and
// carries them through contexts.
package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel converts a config level name. ok is false for "off".
func ParseLevel(levelStr string) (level zapcore.Level, ok bool) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zapcore.DebugLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "off":
		return zapcore.InfoLevel, false
	default:
		return zapcore.InfoLevel, true
	}
}

// NewLogger returns a logger writing JSON to logFile and warnings to stderr.
func NewLogger(levelStr, logFile string) (*zap.Logger, error) {
	return NewLoggerWithStderr(levelStr, logFile, true)
}

// NewLoggerWithStderr is NewLogger with optional console output. The chat
// loop owns stdout and stderr, so it logs to file only.
func NewLoggerWithStderr(levelStr, logFile string, includeStderr bool) (*zap.Logger, error) {
	level, ok := ParseLevel(levelStr)
	if !ok {
		return zap.NewNop(), nil
	}

	var cores []zapcore.Core
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), level))
	}
	if includeStderr {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleLevel := max(level, zapcore.WarnLevel)
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), consoleLevel))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

type loggerContextKey struct{}

// ContextWithLogger stores logger in ctx.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// LoggerFromContext returns the logger stored in ctx, if any.
func LoggerFromContext(ctx context.Context) (*zap.Logger, bool) {
	logger, ok := ctx.Value(loggerContextKey{}).(*zap.Logger)
	return logger, ok && logger != nil
}
