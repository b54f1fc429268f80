package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevel(tt.input))
		})
	}
}

func TestNopLoggerIsSafe(t *testing.T) {
	logger := NewNopLogger()

	// No outputs configured; nothing should panic
	logger.Debug("debug")
	logger.Debugf("debug %d", 1)
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")
	logger.With(Field{Key: "k", Value: "v"}).Info("with fields")
}

func TestConsoleOutputTextFormat(t *testing.T) {
	var buf bytes.Buffer
	output := NewConsoleOutput(&buf, FormatText)

	entry := LogEntry{
		Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Level:     "INFO",
		Message:   "hello",
		Fields:    map[string]interface{}{"count": 3},
	}
	require.NoError(t, output.Write(entry))

	line := buf.String()
	assert.Contains(t, line, "2024/03/01 10:00:00")
	assert.Contains(t, line, "[INFO] hello")
	assert.Contains(t, line, "count=3")
}

func TestConsoleOutputJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	output := NewConsoleOutput(&buf, FormatJSON)

	entry := LogEntry{
		Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Level:     "WARN",
		Message:   "careful",
	}
	require.NoError(t, output.Write(entry))

	line := buf.String()
	assert.Contains(t, line, `"level":"WARN"`)
	assert.Contains(t, line, `"message":"careful"`)
}

func TestFileOutputAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	output, err := NewFileOutput(path, FormatText)
	require.NoError(t, err)

	entry := LogEntry{Timestamp: time.Now(), Level: "INFO", Message: "first"}
	require.NoError(t, output.Write(entry))
	entry.Message = "second"
	require.NoError(t, output.Write(entry))
	require.NoError(t, output.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[1], "second")
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewNopLogger()
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))
	logger.SetLevel(LevelWarn)

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")
	logger.Error("kept too")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "kept too")
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewNopLogger()
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	scoped := logger.With(Field{Key: "component", Value: "pipeline"})
	scoped.Info("scoped message")

	out := buf.String()
	assert.Contains(t, out, "scoped message")
	assert.Contains(t, out, "component=pipeline")
}
