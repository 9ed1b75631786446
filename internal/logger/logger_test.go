package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	log.WithFields(map[string]any{"pattern": "keyvault", "documents": 3}).Info("batch validated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "keyvault", entry["pattern"])
	require.Equal(t, float64(3), entry["documents"])
	require.Equal(t, "batch validated", entry["message"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hidden too")
	require.Zero(t, buf.Len())

	log.Warn("visible")
	require.NotZero(t, buf.Len())
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	log.Info("noop")
	log.Debug("noop")
	log.Warn("noop")
	log.Error(nil, "noop")
	require.Nil(t, log.WithFields(map[string]any{"k": "v"}))
}
