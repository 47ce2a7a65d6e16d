package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{" info ", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		result := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf, Prefix: "test"})

	logger.Debug("hidden")
	logger.Info("peer %s connected", "p1")
	logger.Error("boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out, "[INFO] test: peer p1 connected") {
		t.Errorf("missing info line in %q", out)
	}
	if !strings.Contains(out, "[ERROR] test: boom") {
		t.Errorf("missing error line in %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})

	logger.WithFields(map[string]any{"zeta": 1, "alpha": "a"}).WithComponent("collab").Debug("msg")

	if !strings.HasSuffix(buf.String(), "msg {alpha=a, component=collab, zeta=1}\n") {
		t.Errorf("unexpected line %q", buf.String())
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})
	_ = parent.WithField("k", "v")

	parent.Info("plain")
	if strings.Contains(buf.String(), "k=v") {
		t.Errorf("parent picked up child field: %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	if NullLogger.Enabled(LogLevelError) {
		t.Error("NullLogger should be disabled")
	}
	// Must not panic without an output.
	NullLogger.WithComponent("x").Error("nothing")
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile error = %v", err)
	}
	NewLogger(LoggerConfig{Level: LogLevelInfo, Output: f}).Info("first")
	f.Close()

	f, err = OpenLogFile(path)
	if err != nil {
		t.Fatal(err)
	}
	NewLogger(LoggerConfig{Level: LogLevelInfo, Output: f}).Info("second")
	f.Close()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("log file should be appended to, got %q", data)
	}

	if _, err := OpenLogFile(filepath.Join(path, "nested")); err == nil {
		t.Error("expected error opening a log file under a regular file")
	}
}
