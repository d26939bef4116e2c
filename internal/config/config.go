// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/kaiserhaus/internal/logging"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config File: optional YAML file (config.yaml)
//  3. Environment Variables: override any setting
type Config struct {
	Data     DataConfig     `koanf:"data"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DataConfig describes the orders file loaded at startup.
type DataConfig struct {
	Path  string `koanf:"path"`
	Sheet string `koanf:"sheet"` // .xlsx only; empty selects the first sheet

	// CoerceRatio is the share of non-empty cells that must parse before a text
	// column is typed as numeric or timestamp.
	CoerceRatio float64 `koanf:"coerce_ratio"`

	// LateThresholdMinutes applies when no ETA column resolves.
	LateThresholdMinutes float64 `koanf:"late_threshold_minutes"`
}

// Source returns the table source for the configured file.
func (d DataConfig) Source() table.Source {
	return table.Source{Path: d.Path, Sheet: d.Sheet}
}

// StoreOptions returns the table store options for this configuration.
func (d DataConfig) StoreOptions() table.Options {
	return table.Options{
		CoerceRatio:          d.CoerceRatio,
		LateThresholdMinutes: d.LateThresholdMinutes,
	}
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// APIConfig holds paging and response cache settings
type APIConfig struct {
	DefaultLimit int           `koanf:"default_limit"`
	MaxLimit     int           `koanf:"max_limit"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// LoggerConfig converts the section into a logging.Config.
func (l LoggingConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// Load reads configuration from, in increasing priority:
//  1. Built-in defaults
//  2. Config file (CONFIG_PATH, or one of DefaultConfigPaths)
//  3. Environment variables
//
// See LoadWithKoanf for the underlying implementation.
func Load() (*Config, error) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
