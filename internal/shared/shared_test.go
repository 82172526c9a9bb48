package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	t.Run("returns non-empty", func(t *testing.T) {
		if GenerateID() == "" {
			t.Error("expected non-empty ID")
		}
	})

	t.Run("returns unique values", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			id := GenerateID()
			if seen[id] {
				t.Fatalf("duplicate ID generated: %s", id)
			}
			seen[id] = true
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]any{"total_score": 87.5, "call_id": "abc"}

	t.Run("compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if strings.Contains(string(out), "\n") {
			t.Errorf("compact output should not contain newlines: %q", out)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if !strings.Contains(string(out), "\n") {
			t.Errorf("pretty output should be indented: %q", out)
		}
		if !strings.Contains(string(out), "\"call_id\": \"abc\"") {
			t.Errorf("pretty output missing field: %q", out)
		}
	})
}

func TestLoggers(t *testing.T) {
	t.Run("NewLogger writes to provided writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("upload complete", "call_id", "abc")

		if !strings.Contains(buf.String(), "upload complete") {
			t.Errorf("expected log output in buffer, got %q", buf.String())
		}
	})

	t.Run("NewLogger defaults nil writer", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger with nil writer")
		}
	})

	t.Run("WithLogger attaches fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "batch")
		logger.Info("started")

		if !strings.Contains(buf.String(), "batch") {
			t.Errorf("expected child logger fields in output, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		tmpDir := t.TempDir()
		logPath := filepath.Join(tmpDir, "logs", "tui.log")

		logger, err := NewFileLogger(logPath)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("session started")

		data, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("log file should exist: %v", err)
		}
		if !strings.Contains(string(data), "session started") {
			t.Errorf("expected log entry in file, got %q", data)
		}
	})
}
