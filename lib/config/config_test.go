package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:5000/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Search.Debounce != 300*time.Millisecond {
		t.Errorf("Debounce = %v, want 300ms", cfg.Search.Debounce)
	}
	if cfg.Search.MinLength != 2 {
		t.Errorf("MinLength = %d, want 2", cfg.Search.MinLength)
	}
	if cfg.Web.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Web.Port)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movierecs.yaml")
	body := []byte("api:\n  base_url: http://files.example:9000/api/\nsearch:\n  min_length: 3\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("MOVIERECS_WEB_PORT", "9999")
	t.Setenv("MOVIERECS_SEARCH_MIN_LENGTH", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://files.example:9000/api" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.Search.MinLength != 4 {
		t.Errorf("MinLength = %d, want env override 4", cfg.Search.MinLength)
	}
	if cfg.Web.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Web.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
}

func TestValidateRejects(t *testing.T) {
	cfg := defaultConfig()
	cfg.API.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid base URL")
	}

	cfg = defaultConfig()
	cfg.Log.Level = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"MOVIERECS_API_BASE_URL":     "api.base_url",
		"MOVIERECS_SEARCH_DEBOUNCE":  "search.debounce",
		"MOVIERECS_BREAKER_FAILURES": "breaker.failures",
		"MOVIERECS_WEB_RATE_LIMIT":   "web.rate_limit",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
