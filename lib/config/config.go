// Package config loads movierecs settings from built-in defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/icco/movierecs/lib/validation"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is stripped from environment variables before they are mapped
// onto config keys: MOVIERECS_API_BASE_URL -> api.base_url.
const EnvPrefix = "MOVIERECS_"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"movierecs.yaml",
	"movierecs.yml",
}

type Config struct {
	API     APIConfig     `koanf:"api"`
	Search  SearchConfig  `koanf:"search"`
	Breaker BreakerConfig `koanf:"breaker"`
	Web     WebConfig     `koanf:"web"`
	Log     LogConfig     `koanf:"log"`
}

type APIConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

type SearchConfig struct {
	Debounce  time.Duration `koanf:"debounce" validate:"gte=0"`
	MinLength int           `koanf:"min_length" validate:"gte=1"`
}

// BreakerConfig tunes the circuit breaker in front of the backend. The
// breaker opens once Failures consecutive requests have failed.
type BreakerConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Failures uint32        `koanf:"failures" validate:"gte=1"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
}

type WebConfig struct {
	Port string `koanf:"port" validate:"required,numeric"`
	// RateLimit is the per-IP request budget per minute; 0 disables it.
	RateLimit int `koanf:"rate_limit" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json text"`
	// File receives logs in terminal mode, where stdout belongs to the UI.
	File string `koanf:"file"`
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
			Timeout: 10 * time.Second,
		},
		Search: SearchConfig{
			Debounce:  300 * time.Millisecond,
			MinLength: 2,
		},
		Breaker: BreakerConfig{
			Enabled:  true,
			Failures: 5,
			Timeout:  30 * time.Second,
		},
		Web: WebConfig{
			Port:      "8080",
			RateLimit: 120,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   "movierecs.log",
		},
	}
}

// Load builds the configuration: defaults, then the first config file
// found, then MOVIERECS_* environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints and normalizes the base URL.
func (c *Config) Validate() error {
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	return validation.Struct(c)
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps MOVIERECS_SECTION_SOME_KEY to section.some_key.
// Only the first underscore separates the section.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return section
	}
	return section + "." + rest
}
