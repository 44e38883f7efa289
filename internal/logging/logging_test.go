package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestOpenTruncatesPreviousLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "builder.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	logger, closeLog, err := Open(Options{Path: path, Level: "debug", Format: "console", RunID: "run-1"})
	require.NoError(t, err)

	logger.Debug("no infobox found", zap.String("entity", "Goblin"))
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)

	assert.NotContains(t, s, "previous run")
	assert.Contains(t, s, "DEBUG")
	assert.Contains(t, s, "no infobox found")
	assert.Contains(t, s, `"run_id": "run-1"`)
}

func TestOpenRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "builder.log")

	logger, closeLog, err := Open(Options{Path: path, Level: "warn", Format: "json"})
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"shown"`)
}

func TestOpenErrors(t *testing.T) {
	_, _, err := Open(Options{Path: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	assert.Error(t, err)

	_, _, err = Open(Options{Path: filepath.Join(t.TempDir(), "missing", "x.log"), Level: "debug"})
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(zapcore.AddSync(&buf), zapcore.InfoLevel, "json")
	logger.Info("built", zap.Int("id", 2))

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"), line)
	assert.Contains(t, line, `"id":2`)
}
