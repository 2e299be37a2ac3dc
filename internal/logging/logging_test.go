package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		expect slog.Level
	}{
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"  warn  ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.expect {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.expect)
		}
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Options{Level: "info", Format: "json"})

	logger.Debug("hidden")
	logger.Info("saved militant", "id", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["msg"] != "saved militant" || entry["id"] != float64(7) {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNewWithWriter_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Options{Level: "debug", Format: "text"})
	logger.Debug("lookup", "entity", "calification")

	if !strings.Contains(buf.String(), "msg=lookup entity=calification") {
		t.Errorf("unexpected text output %q", buf.String())
	}
}

func TestNew_RotatedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "api.log")
	logger, closer := New(Options{Level: "info", Format: "json", File: path, MaxSizeMB: 1})
	logger.Info("written to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("expected message in log file, got %q", data)
	}
}

func TestNew_Stdout(t *testing.T) {
	t.Parallel()

	logger, closer := New(Options{Level: "info"})
	if logger == nil {
		t.Fatal("expected logger")
	}
	if err := closer.Close(); err != nil {
		t.Errorf("stdout closer should not fail: %v", err)
	}
}
