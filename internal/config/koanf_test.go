// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearConfigEnv unsets every mapped variable for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for key := range envMappings {
		name := strings.ToUpper(key)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Data.Path != DefaultDataPath {
		t.Errorf("Data.Path = %q, want %q", cfg.Data.Path, DefaultDataPath)
	}
	if cfg.Data.CoerceRatio != 0.9 {
		t.Errorf("Data.CoerceRatio = %v, want 0.9", cfg.Data.CoerceRatio)
	}
	if cfg.Data.LateThresholdMinutes != 45 {
		t.Errorf("Data.LateThresholdMinutes = %v, want 45", cfg.Data.LateThresholdMinutes)
	}
	if cfg.Server.Port != 8001 {
		t.Errorf("Server.Port = %d, want 8001", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.API.MaxLimit != 5000 {
		t.Errorf("API.MaxLimit = %d, want 5000", cfg.API.MaxLimit)
	}
	if cfg.API.DefaultLimit != 200 {
		t.Errorf("API.DefaultLimit = %d, want 200", cfg.API.DefaultLimit)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DATA_PATH", "data.path"},
		{"EXCEL_FILE", "data.path"},
		{"DATA_SHEET", "data.sheet"},
		{"LATE_THRESHOLD_MINUTES", "data.late_threshold_minutes"},
		{"HTTP_PORT", "server.port"},
		{"PORT", "server.port"},
		{"HTTP_SHUTDOWN_TIMEOUT", "server.shutdown_timeout"},
		{"API_MAX_LIMIT", "api.max_limit"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"log_level", "logging.level"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery through CONFIG_PATH
func TestFindConfigFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 9100\n")

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "nope.yaml"))
	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() = %q, want empty for a missing file", got)
	}
}

func TestLoadWithKoanfDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8001" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:8001", cfg.Server.Addr())
	}
	if cfg.API.CacheTTL != 10*time.Minute {
		t.Errorf("API.CacheTTL = %v, want 10m", cfg.API.CacheTTL)
	}
	if got := cfg.Data.StoreOptions().LateThresholdMinutes; got != 45 {
		t.Errorf("StoreOptions().LateThresholdMinutes = %v, want 45", got)
	}
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("EXCEL_FILE", "/srv/orders.csv")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LATE_THRESHOLD_MINUTES", "60")
	t.Setenv("HTTP_WRITE_TIMEOUT", "45s")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Data.Path != "/srv/orders.csv" {
		t.Errorf("Data.Path = %q, want /srv/orders.csv", cfg.Data.Path)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Data.LateThresholdMinutes != 60 {
		t.Errorf("Data.LateThresholdMinutes = %v, want 60", cfg.Data.LateThresholdMinutes)
	}
	if cfg.Server.WriteTimeout != 45*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want 45s", cfg.Server.WriteTimeout)
	}
	want := []string{"http://a.example", "http://b.example"}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != want[0] || cfg.Security.CORSOrigins[1] != want[1] {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}

	// Defaults still apply for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
}

// TestLoadWithKoanfConfigFile tests loading configuration from a YAML file
func TestLoadWithKoanfConfigFile(t *testing.T) {
	clearConfigEnv(t)

	path := writeConfigFile(t, `
data:
  path: /data/pedidos.xlsx
  sheet: Pedidos
server:
  port: 8500
security:
  cors_origins:
    - http://dash.example
  rate_limit_reqs: 50
logging:
  format: console
`)
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Data.Sheet != "Pedidos" {
		t.Errorf("Data.Sheet = %q, want Pedidos", cfg.Data.Sheet)
	}
	if src := cfg.Data.Source(); src.Path != "/data/pedidos.xlsx" || src.Sheet != "Pedidos" {
		t.Errorf("Data.Source() = %+v", src)
	}
	if cfg.Server.Port != 8500 {
		t.Errorf("Server.Port = %d, want 8500", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "http://dash.example" {
		t.Errorf("Security.CORSOrigins = %v, want [http://dash.example]", cfg.Security.CORSOrigins)
	}
	if cfg.Security.RateLimitReqs != 50 {
		t.Errorf("Security.RateLimitReqs = %d, want 50", cfg.Security.RateLimitReqs)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

// TestLoadWithKoanfEnvOverridesFile tests that env vars take precedence over the file
func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)

	path := writeConfigFile(t, "server:\n  port: 8500\ndata:\n  path: /data/a.xlsx\n")
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "8600")
	t.Setenv("DATA_PATH", "/data/b.parquet")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 8600 {
		t.Errorf("Server.Port = %d, want 8600 (env wins)", cfg.Server.Port)
	}
	if cfg.Data.Path != "/data/b.parquet" {
		t.Errorf("Data.Path = %q, want /data/b.parquet (env wins)", cfg.Data.Path)
	}
}

// TestLoadWithKoanfValidation tests that invalid values are rejected at load time
func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"bad extension", map[string]string{"DATA_PATH": "orders.json"}, "unsupported extension"},
		{"bad ratio", map[string]string{"DATA_COERCE_RATIO": "1.5"}, "DATA_COERCE_RATIO"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"default over max", map[string]string{"API_DEFAULT_LIMIT": "10", "API_MAX_LIMIT": "5"}, "API_DEFAULT_LIMIT"},
		{"mixed cors", map[string]string{"CORS_ORIGINS": "*,http://a.example"}, "CORS_ORIGINS"},
		{"bad rate limit", map[string]string{"RATE_LIMIT_REQUESTS": "0"}, "RATE_LIMIT_REQUESTS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadWithKoanf() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRateLimitDisabledSkipsBounds(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil when rate limiting is disabled", err)
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := LoggingConfig{Level: "warn", Format: "console", Caller: true}.LoggerConfig()

	if cfg.Level != "warn" || cfg.Format != "console" || !cfg.Caller {
		t.Errorf("LoggerConfig() = %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("LoggerConfig() should keep timestamps enabled")
	}
}
