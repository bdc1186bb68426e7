package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")

	log.Debug("hidden")
	log.Info("holidays built", slog.Int("year", 2024))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "holidays built" || entry["year"] != float64(2024) {
		t.Errorf("entry = %v", entry)
	}
}

func TestFromContext_RequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "debug", "text")

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	FromContext(ctx, base).Info("lookup")

	if !strings.Contains(buf.String(), "request_id=req-42") {
		t.Errorf("log output missing request id: %q", buf.String())
	}
	if RequestID(context.Background()) != "" {
		t.Error("RequestID of empty context should be empty")
	}
}

func TestFromContext_NoRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "info", "text")

	if got := FromContext(context.Background(), base); got != base {
		t.Error("FromContext without a request ID should return the base logger")
	}

	prev := slog.Default()
	slog.SetDefault(base)
	defer slog.SetDefault(prev)

	FromContext(context.Background(), nil).Info("fallback")
	if !strings.Contains(buf.String(), "msg=fallback") {
		t.Errorf("nil base did not log through the default logger: %q", buf.String())
	}
}
