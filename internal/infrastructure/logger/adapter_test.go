package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerAdapter_KeyValueArgs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	log.Info("upstream call", "service", "deepseek", "status", 200)
	log.Debug("details", "len", 12)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "upstream call", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "deepseek", ctx["service"])
	assert.EqualValues(t, 200, ctx["status"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestLoggerAdapter_WithFieldsDoesNotLeak(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	root := NewWithCore(core)

	child := root.WithFields(map[string]any{"component": "vv", "run_id": "abc"})
	child.Warn("check failed")
	root.Error("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "vv", entries[0].ContextMap()["component"])
	assert.Equal(t, "abc", entries[0].ContextMap()["run_id"])
	assert.NotContains(t, entries[1].ContextMap(), "component")
}

func TestLoggerAdapter_LevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := NewWithCore(core).WithField("request_id", "r1")

	log.Info("dropped")
	log.Warn("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
	assert.Equal(t, "r1", logs.All()[0].ContextMap()["request_id"])
}

func TestNewLoggerAdapter_RejectsUnknownLevel(t *testing.T) {
	_, err := NewLoggerAdapter(Config{Level: "loud", Format: "json"})
	assert.Error(t, err)
}

func TestNewLoggerAdapter_Defaults(t *testing.T) {
	log, err := NewLoggerAdapter(DefaultConfig())
	require.NoError(t, err)
	log.Debug("not visible at info")
	assert.NoError(t, log.Close())
}
