package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		l, err := newLogger(Config{Level: level, Encoding: "json"})
		require.NoError(t, err, "level %s", level)
		require.NotNil(t, l)
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, err := newLogger(Config{Level: "verbose", Encoding: "json"})
	assert.Error(t, err)
}

func TestNewLoggerConsoleEncoding(t *testing.T) {
	l, err := newLogger(Config{Level: "info", Encoding: "console", Development: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestGetNeverNil(t *testing.T) {
	l := Get()
	require.NotNil(t, l)
	// Repeat calls return the same global.
	assert.Same(t, l, Get())
}

func TestWithContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), OperationKey, "read")
	ctx = context.WithValue(ctx, SourceKey, "bytes")
	l := WithContext(ctx)
	require.NotNil(t, l)

	// A context without the keys falls back to the plain global.
	assert.NotNil(t, WithContext(context.Background()))
}
