package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/icco/movierecs/lib/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFormats(t *testing.T) {
	var buf bytes.Buffer
	New(config.LogConfig{Level: "info", Format: "json"}, &buf).Info("hello", slog.String("k", "v"))
	if !strings.Contains(buf.String(), `"k":"v"`) {
		t.Errorf("json output missing attribute: %s", buf.String())
	}

	buf.Reset()
	New(config.LogConfig{Level: "info", Format: "text"}, &buf).Info("hello", slog.String("k", "v"))
	if !strings.Contains(buf.String(), "k=v") {
		t.Errorf("text output missing attribute: %s", buf.String())
	}

	buf.Reset()
	New(config.LogConfig{Level: "warn", Format: "json"}, &buf).Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info line written at warn level: %s", buf.String())
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "movierecs.log")
	logger, f, err := NewFile(config.LogConfig{Level: "debug", Format: "text", File: path})
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	logger.Debug("written")
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written") {
		t.Errorf("log file missing entry: %s", data)
	}
}
