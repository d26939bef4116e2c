// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/kaiserhaus/internal/logging"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateData validates the orders file settings
func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.Path) == "" {
		return fmt.Errorf("DATA_PATH is required")
	}
	switch c.Data.Source().DetectFormat() {
	case table.FormatCSV, table.FormatTSV, table.FormatParquet, table.FormatXLSX:
	default:
		return fmt.Errorf("DATA_PATH %q has an unsupported extension (want .xlsx, .csv, .tsv or .parquet)", c.Data.Path)
	}
	if c.Data.CoerceRatio <= 0 || c.Data.CoerceRatio > 1 {
		return fmt.Errorf("DATA_COERCE_RATIO must be in (0, 1], got %v", c.Data.CoerceRatio)
	}
	if c.Data.LateThresholdMinutes <= 0 {
		return fmt.Errorf("LATE_THRESHOLD_MINUTES must be positive, got %v", c.Data.LateThresholdMinutes)
	}
	return nil
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// validateAPI validates paging and cache settings
func (c *Config) validateAPI() error {
	if c.API.MaxLimit < 1 {
		return fmt.Errorf("API_MAX_LIMIT must be at least 1")
	}
	if c.API.DefaultLimit < 1 || c.API.DefaultLimit > c.API.MaxLimit {
		return fmt.Errorf("API_DEFAULT_LIMIT must be between 1 and API_MAX_LIMIT (%d)", c.API.MaxLimit)
	}
	if c.API.CacheTTL < 0 {
		return fmt.Errorf("API_CACHE_TTL must not be negative")
	}
	return nil
}

// validateSecurity validates CORS and rate limiting configuration
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects empty origins and mixing "*" with explicit origins.
func (c *Config) validateCORS() error {
	wildcard := false
	for _, origin := range c.Security.CORSOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			return fmt.Errorf("CORS_ORIGINS contains an empty origin")
		}
		if origin == "*" {
			wildcard = true
		}
	}
	if wildcard && len(c.Security.CORSOrigins) > 1 {
		return fmt.Errorf("CORS_ORIGINS cannot combine * with explicit origins")
	}
	return nil
}

// validateRateLimits validates rate limiting bounds
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

func (c *Config) validateLogLevel() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level (trace, debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateLogFormat() error {
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	}
	return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
}
