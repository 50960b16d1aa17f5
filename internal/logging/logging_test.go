package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level zapcore.Level
		ok    bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"INFO", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"off", zapcore.InfoLevel, false},
		{"bogus", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "kabaddi.log")
	logger, err := NewLoggerWithStderr("info", logFile, false)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("Corpus loaded", zap.Int("passages", 45))
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Corpus loaded")
	assert.Contains(t, string(data), `"passages":45`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNewLoggerOff(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "kabaddi.log")
	logger, err := NewLogger("off", logFile)
	require.NoError(t, err)
	logger.Error("nothing")

	_, err = os.Stat(logFile)
	assert.True(t, os.IsNotExist(err))
}

func TestNewLoggerWithoutOutputs(t *testing.T) {
	logger, err := NewLoggerWithStderr("debug", "", false)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestLoggerContext(t *testing.T) {
	_, ok := LoggerFromContext(context.Background())
	assert.False(t, ok)

	logger := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), logger)
	got, ok := LoggerFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, logger, got)
}
