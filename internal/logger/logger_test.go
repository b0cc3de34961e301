package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WARN)

	l.Info("DATABASE", "hidden")
	l.Warn("database", "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "[DATABASE  ]")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "logger_test.go")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("warning"))
	assert.Equal(t, ERROR, ParseLevel("ERROR"))
	assert.Equal(t, INFO, ParseLevel("whatever"))
}

func TestHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, DEBUG)

	l.LogAPI("GET", "/venues", 200, 3*time.Millisecond)
	l.LogDatabase("INSERT", "venues", "id=1")
	l.LogKafka("PUBLISH", "topic", "venue.listed")

	out := buf.String()
	assert.Contains(t, out, "GET /venues - 200 (3ms)")
	assert.Contains(t, out, "[INSERT] venues - id=1")
	assert.Contains(t, out, "[PUBLISH] topic - venue.listed")
}

func TestFileOutputIsJSON(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger("info", dir)
	require.NoError(t, err)
	l.out = &bytes.Buffer{}

	l.Error("store", "boom")
	l.Close()

	files, err := filepath.Glob(filepath.Join(dir, "fyyur-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var entry LogEntry
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "STORE", entry.Category)
	assert.Equal(t, "boom", entry.Message)
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() {
		l.Info("X", "y")
		l.Close()
	})
}
