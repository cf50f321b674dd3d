package logging_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"opencode-ntfy/internal/config"
	"opencode-ntfy/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	noColor := false

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
		Color:       &noColor,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "sender").Warn("failed to send notification",
		slog.String("topic", "my topic"),
		slog.Int("status", 500),
	)
	logger.Debug("hidden")

	content := readLog(t, logPath)
	if !strings.Contains(content, "WARN sender: failed to send notification") {
		t.Fatalf("expected level, component, and message, got %q", content)
	}
	if !strings.Contains(content, `topic="my topic"`) || !strings.Contains(content, "status=500") {
		t.Fatalf("expected key=value attrs, got %q", content)
	}
	if strings.Contains(content, "hidden") {
		t.Fatalf("debug line should be filtered at info level, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
	if strings.Contains(content, "\x1b[") {
		t.Fatalf("expected no color codes, got %q", content)
	}
}

func TestJSONLoggerUsesCompactKeys(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")

	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithCorrelationID(context.Background(), "corr-1")
	logging.WithContext(ctx, logger).Info("hello", slog.String(logging.FieldEventType, "session.idle"))

	var record map[string]any
	line := strings.TrimSpace(readLog(t, logPath))
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("decode log line %q: %v", line, err)
	}
	if record["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
	if record[logging.FieldCorrelationID] != "corr-1" {
		t.Fatalf("expected correlation id, got %v", record)
	}
	if src, _ := record["source"].(string); !strings.Contains(src, ".go:") {
		t.Fatalf("expected source at debug level, got %v", record["source"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromSettingsWritesLogFile(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Logging.File = filepath.Join(t.TempDir(), "nested", "ntfy.log")
	settings.Logging.Format = "json"

	logger, err := logging.NewFromSettings(&settings)
	if err != nil {
		t.Fatalf("NewFromSettings returned error: %v", err)
	}
	logger.Info("to file")

	if content := readLog(t, settings.Logging.File); !strings.Contains(content, "to file") {
		t.Fatalf("expected log line in file, got %q", content)
	}
}

func TestCorrelationIDHelpers(t *testing.T) {
	if _, ok := logging.CorrelationIDFromContext(context.Background()); ok {
		t.Fatal("expected no correlation id on background context")
	}
	ctx := logging.WithCorrelationID(context.Background(), "abc")
	if id, ok := logging.CorrelationIDFromContext(ctx); !ok || id != "abc" {
		t.Fatalf("unexpected correlation id %q ok=%v", id, ok)
	}
	if logging.WithContext(ctx, nil) == nil {
		t.Fatal("expected fallback logger")
	}
}
