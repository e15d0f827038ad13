package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer

	logger, cleanup, err := New(Options{Level: "warn", Console: &console})
	require.NoError(t, err)
	defer cleanup()

	logger.Info("hidden")
	logger.Warn("shown", "body", "LK")

	out := console.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "body=LK")
}

func TestNew_WithFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "charsprite.log")

	logger, cleanup, err := New(Options{Level: "error", File: path, Console: &console})
	require.NoError(t, err)

	logger.With("request", "abc").Debug("Resolved sprite request", "layers", 3)
	cleanup()

	assert.Empty(t, console.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimSpace(string(data))
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	assert.Equal(t, "Resolved sprite request", record["msg"])
	assert.Equal(t, "abc", record["request"])
	assert.EqualValues(t, 3, record["layers"])
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}
