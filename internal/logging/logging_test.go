package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" ERROR ", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseFormatter(tt.in); got != tt.want {
			t.Errorf("ParseFormatter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn", Format: "text"})
	logger.Info("hidden")
	logger.Warn("shown", "key", "tasks")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=tasks") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "info", Format: "json", Prefix: "tasklist"})
	logger.Info("Loaded tasks", "tasks", 3)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "Loaded tasks" {
		t.Errorf("msg: got %v", entry["msg"])
	}
	if entry["prefix"] != "tasklist" {
		t.Errorf("prefix: got %v", entry["prefix"])
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tasklist.log")

	for i := 0; i < 2; i++ {
		fl, err := OpenFile(path, DefaultOptions())
		if err != nil {
			t.Fatalf("OpenFile failed: %v", err)
		}
		fl.Logger.Info("started")
		if err := fl.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "started"); n != 2 {
		t.Errorf("log file has %d entries, want 2:\n%s", n, data)
	}
}

func TestOpenFileEmptyPath(t *testing.T) {
	if _, err := OpenFile("", DefaultOptions()); err == nil {
		t.Error("OpenFile(\"\") should fail")
	}
	var nilLogger *FileLogger
	if err := nilLogger.Close(); err != nil {
		t.Errorf("Close on nil FileLogger: %v", err)
	}
}
