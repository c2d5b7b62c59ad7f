package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/helixml/listingllm/internal/config"
)

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []config.LogFormat{config.LogFormatPretty, config.LogFormatJSON} {
		cfg := config.NewAppConfigWithOptions(
			config.WithLogLevel("INFO"),
			config.WithLogFormat(format),
		)

		logger := NewLogger(cfg)
		if logger == nil || logger.Slog() == nil {
			t.Fatalf("NewLogger(%s) returned an unusable logger", format)
		}
	}
}

func TestLogger_JSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "DEBUG")

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 log lines, got %d", len(lines))
	}
	for i, line := range lines {
		var data map[string]any
		if err := json.Unmarshal([]byte(line), &data); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithHotelID(ctx, "H42")
	logger.InfoContext(ctx, "listing enriched")

	var data map[string]any
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if data["run_id"] != "run-1" {
		t.Errorf("expected run_id=run-1, got %v", data["run_id"])
	}
	if data["hotel_id"] != "H42" {
		t.Errorf("expected hotel_id=H42, got %v", data["hotel_id"])
	}
}

func TestLogger_WithContext_NoValues(t *testing.T) {
	logger := NewLoggerWithWriter(&bytes.Buffer{}, config.LogFormatJSON, "INFO")
	if logger.WithContext(context.Background()) != logger {
		t.Error("WithContext without values should return the same logger")
	}
}

func TestContextAccessors_NotSet(t *testing.T) {
	ctx := context.Background()
	if RunID(ctx) != "" {
		t.Errorf("RunID() = %q, want empty", RunID(ctx))
	}
	if HotelID(ctx) != "" {
		t.Errorf("HotelID() = %q, want empty", HotelID(ctx))
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == b {
		t.Error("NewRunID should return distinct values")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("NewRunID() = %q is not a UUID: %v", a, err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DEBUG", "DEBUG"},
		{"debug", "DEBUG"},
		{"INFO", "INFO"},
		{"WARN", "WARN"},
		{"warning", "WARN"},
		{"ERROR", "ERROR"},
		{"CRITICAL", "ERROR"},
		{"", "INFO"},
		{"nonsense", "INFO"},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN")

	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info record should be filtered at WARN level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn record should be written at WARN level")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	if logger.Slog() == nil {
		t.Error("Discard should return a usable logger")
	}
}
