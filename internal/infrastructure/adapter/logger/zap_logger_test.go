package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level zap.AtomicLevel) (*ZapLogger, *observer.ObservedLogs) {
	zc, logs := observer.New(level)
	return NewZapLoggerWithCore(zc, level), logs
}

func TestZapLogger_LevelFiltering(t *testing.T) {
	l, logs := newObservedLogger(zap.NewAtomicLevelAt(zap.InfoLevel))

	l.Debug("hidden", nil)
	l.Info("shown", map[string]any{"version": "1.2", "installed_rank": 3})
	require.Equal(t, 1, logs.Len())

	entry := logs.All()[0]
	assert.Equal(t, "shown", entry.Message)
	assert.Equal(t, map[string]any{"version": "1.2", "installed_rank": int64(3)}, entry.ContextMap())

	l.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, l.GetLevel())
	l.Debug("now shown", nil)
	assert.Equal(t, 2, logs.Len())

	l.SetLevel(core.LogLevelError)
	l.Warn("hidden again", nil)
	l.Error("failure", map[string]any{"error": errors.New("boom")})
	require.Equal(t, 3, logs.Len())
	assert.Equal(t, "boom", logs.All()[2].ContextMap()["error"])
}

func TestZapLogger_With(t *testing.T) {
	l, logs := newObservedLogger(zap.NewAtomicLevelAt(zap.DebugLevel))

	l.With(map[string]any{"run_id": "abc"}).Info("migrating", map[string]any{"table": "schema_history"})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "abc", logs.All()[0].ContextMap()["run_id"])
	assert.Equal(t, "schema_history", logs.All()[0].ContextMap()["table"])
}

func TestNewZapLogger(t *testing.T) {
	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ledger.log")
		l, err := NewZapLogger(Options{Level: "warn", Format: "json", Output: path, Production: true})
		require.NoError(t, err)
		assert.Equal(t, core.LogLevelWarn, l.GetLevel())

		l.Info("skipped", nil)
		l.Warn("written", map[string]any{"table": "schema_history"})
		require.NoError(t, l.Flush())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "skipped")
		assert.Contains(t, string(data), `"message":"written"`)
		assert.Contains(t, string(data), `"table":"schema_history"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewZapLogger(Options{Format: "xml"})
		assert.Error(t, err)
	})
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	assert.Equal(t, core.LogLevelInfo, l.GetLevel())
	l.SetLevel(core.LogLevelError)
	assert.Equal(t, core.LogLevelError, l.GetLevel())
	assert.NoError(t, l.Flush())
}
