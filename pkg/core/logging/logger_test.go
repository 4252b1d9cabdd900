package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	mdwlog "github.com/msto63/pl2/foundation/core/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected mdwlog.Level
	}{
		{"trace", mdwlog.LevelTrace},
		{"debug", mdwlog.LevelDebug},
		{"info", mdwlog.LevelInfo},
		{"warn", mdwlog.LevelWarn},
		{"warning", mdwlog.LevelWarn},
		{"error", mdwlog.LevelError},
		{"invalid", mdwlog.LevelInfo}, // defaults to info
		{"", mdwlog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("pl2")

	if cfg.ServiceName != "pl2" {
		t.Errorf("ServiceName = %v, want pl2", cfg.ServiceName)
	}
	if cfg.Level != "warn" {
		t.Errorf("Level = %v, want warn", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("Format = %v, want console", cfg.Format)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		ServiceName: "test-service",
		Level:       "debug",
		Format:      "json",
		Output:      &buf,
	})

	logger.Debug("hello", mdwlog.Fields{"n": 1})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "hello" || entry["logger"] != "test-service" || entry["level"] != "debug" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "warn", Format: "text", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}
}

func TestNewLoggerAdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:             "info",
		Format:            "text",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Info("twice")

	if !strings.Contains(primary.String(), "twice") || !strings.Contains(extra.String(), "twice") {
		t.Errorf("primary = %q, extra = %q", primary.String(), extra.String())
	}
}

func TestNewLoggerUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "info", Format: "xml", Output: &buf})
	logger.Info("fallback")

	if !strings.Contains(buf.String(), "[INF]") {
		t.Errorf("output = %q, want console text", buf.String())
	}
}

func TestNewCLILogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		verbose bool
		want    mdwlog.Level
	}{
		{"defaults", "", "", false, mdwlog.LevelWarn},
		{"configured level", "error", "text", false, mdwlog.LevelError},
		{"verbose wins", "error", "", true, mdwlog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewCLILogger("pl2", tt.level, tt.format, &buf, tt.verbose)
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("GetLevel() = %v, want %v", got, tt.want)
			}

			logger.Error("written")
			if !strings.Contains(buf.String(), "written") {
				t.Errorf("output = %q, want the configured writer", buf.String())
			}
		})
	}
}

func TestKV(t *testing.T) {
	// Empty input
	if fields := KV(); fields != nil {
		t.Error("KV() with no args should return nil")
	}

	// Valid key-value pairs
	fields := KV("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v, want value1", fields["key1"])
	}
	if fields["key2"] != 42 {
		t.Errorf("fields[key2] = %v, want 42", fields["key2"])
	}

	// Non-string key (should be skipped)
	if fields := KV(123, "value"); len(fields) != 0 {
		t.Errorf("Non-string key should be skipped, got %v fields", len(fields))
	}

	// Odd number of arguments drops the orphan
	if fields := KV("a", 1, "orphan"); len(fields) != 1 {
		t.Errorf("orphan key should be dropped, got %v", fields)
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLogger(LoggerConfig{Level: "info", Format: "json", Output: io.Discard})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", KV("iteration", i))
	}
}
