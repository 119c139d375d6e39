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

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelInfo))

	logger.Info("indexed transcript",
		slog.String("video_id", "vid1"),
		slog.Int("words", 1543),
		slog.String("title", "Understanding Inflation"))

	line := strings.TrimSpace(buf.String())
	for _, want := range []string{"INFO", "indexed transcript", "video_id=vid1", "words=1543", `title="Understanding Inflation"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in output, got %q", want, line)
		}
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelWarn))

	logger.Info("quiet")
	logger.Warn("loud")

	output := buf.String()
	if strings.Contains(output, "quiet") {
		t.Fatalf("expected info record to be dropped, got %q", output)
	}
	if !strings.Contains(output, "loud") {
		t.Fatalf("expected warn record to pass, got %q", output)
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelInfo)).
		WithGroup("job").With(slog.String("id", "job-1"))

	logger.Info("polling")

	if !strings.Contains(buf.String(), "job.id=job-1") {
		t.Fatalf("expected dotted group key, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewJSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scribe.log")
	logger, err := New(Options{Format: "json", Paths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("download complete", slog.String("video_id", "vid1"))

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(raw), &record); err != nil {
		t.Fatalf("parse log record: %v", err)
	}
	if record["msg"] != "download complete" {
		t.Fatalf("unexpected message %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("expected ts key in record")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
