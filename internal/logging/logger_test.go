package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerIncludesComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	NewComponentLogger(logger, "catalog").Info("catalogue saved", Int("count", 3))

	line := buf.String()
	if !strings.Contains(line, "INFO catalog: catalogue saved") {
		t.Fatalf("unexpected log line: %q", line)
	}
	if !strings.Contains(line, "count=3") {
		t.Fatalf("expected count attribute, got %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Warn("save failed", String("path", "/tmp/my games/instances.json"))

	if !strings.Contains(buf.String(), `path="/tmp/my games/instances.json"`) {
		t.Fatalf("expected quoted path, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("nonsense"); got != slog.LevelInfo {
		t.Fatalf("expected info level, got %v", got)
	}
	if got := parseLevel("debug"); got != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", got)
	}
}
