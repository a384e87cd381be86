package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerAdapter_WithFieldCarriesContext(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewFromZap(zap.New(core))

	log.WithField("trace_id", "abc").Info("search started", "prompt", "bike")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "search started", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "abc", fields["trace_id"])
	assert.Equal(t, "bike", fields["prompt"])
}

func TestLoggerAdapter_WithFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewFromZap(zap.New(core))

	log.WithFields(map[string]any{"op": "search", "max_steps": 25}).Warn("empty result")

	entries := logs.FilterMessage("empty result").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "search", entries[0].ContextMap()["op"])
	assert.EqualValues(t, 25, entries[0].ContextMap()["max_steps"])
}

func TestNewLoggerAdapter_WritesLogFile(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLoggerAdapter(Config{Level: "debug", Format: "json", Dir: dir, Name: "find a bike!"})
	require.NoError(t, err)

	log.Info("hello")
	require.NoError(t, log.Close())

	matches, err := filepath.Glob(filepath.Join(dir, "log", "*_find_a_bike.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestLoggerAdapter_CloseReleasesLogFile(t *testing.T) {
	log, err := NewLoggerAdapter(Config{Level: "info", Format: "console", Dir: t.TempDir(), Name: "run"})
	require.NoError(t, err)
	require.NotNil(t, log.sink)

	log.WithField("trace_id", "abc").Info("before close")
	require.NoError(t, log.Close())
	require.NoError(t, log.Close())

	_, err = log.sink.Write([]byte("after close\n"))
	assert.Error(t, err)
}

func TestLoggerAdapter_CloseWithoutFile(t *testing.T) {
	log, err := NewLoggerAdapter(DefaultConfig())
	require.NoError(t, err)

	assert.Nil(t, log.sink)
	assert.NoError(t, log.Close())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zap.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zap.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zap.InfoLevel, parseLevel("bogus"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "assistant", sanitize("!!!"))
	assert.Equal(t, "a_b-c", sanitize("a b-c"))
	assert.Len(t, sanitize(strings.Repeat("a", 100)), 60)
}
