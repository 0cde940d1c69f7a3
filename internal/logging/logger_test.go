package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase INFO", "INFO", slog.LevelInfo},
		{"uppercase TRACE", "TRACE", LevelTrace},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)

	logger.Debug("hidden")
	logger.Info("visible", "strain", "STAPH_V1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug output should be suppressed at info level")
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "STAPH_V1") {
		t.Errorf("info output missing expected content: %s", out)
	}
}

func TestNewLogger_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)

	logger.Log(nil, LevelTrace, "deep detail")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("trace output should be labeled TRACE: %s", buf.String())
	}
}

func TestEventLogger(t *testing.T) {
	dir := t.TempDir()

	el := NewEventLogger(dir)
	if el == nil {
		t.Fatal("NewEventLogger returned nil")
	}

	el.Log(map[string]any{"event": "observation", "strain": "STAPH_V1", "score": 0.95})
	el.Log(map[string]any{"event": "containment", "strain": "STAPH_V1"})
	el.Close()

	f, err := os.Open(filepath.Join(dir, "governance.jsonl"))
	if err != nil {
		t.Fatalf("opening governance.jsonl: %v", err)
	}
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines, err)
		}
		if entry["time"] == nil {
			t.Errorf("line %d missing time field", lines)
		}
	}
	if lines != 2 {
		t.Errorf("expected 2 JSONL lines, got %d", lines)
	}
}

func TestEventLogger_NilSafe(t *testing.T) {
	var el *EventLogger
	el.Log(map[string]any{"event": "ignored"})
	el.Close()
}
