// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

/*
Package config provides centralized configuration management for Kaiserhaus.

Configuration is layered with Koanf v2, lowest priority first:
  - Built-in defaults (defaultConfig)
  - Optional YAML file (CONFIG_PATH, or config.yaml / /etc/kaiserhaus/config.yaml)
  - Environment variables mapped through envTransformFunc

# Environment Variables

Data:
  - DATA_PATH: Orders file (.xlsx, .csv or .parquet) (default: data/Base_Kaiserhaus.xlsx)
  - EXCEL_FILE: Legacy alias for DATA_PATH
  - DATA_SHEET: Worksheet name for .xlsx files (default: first sheet)
  - DATA_COERCE_RATIO: Share of parseable cells needed to type a column (default: 0.9)
  - LATE_THRESHOLD_MINUTES: Delivery minutes above which an order is late (default: 45)

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT / PORT: Listen port (default: 8001)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 10s)

API:
  - API_DEFAULT_LIMIT: Explorer page size (default: 200)
  - API_MAX_LIMIT: Largest explorer page (default: 5000)
  - API_CACHE_TTL: Response cache TTL (default: 10m)

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	store := table.NewStore(cfg.Data.StoreOptions())

Config is immutable after Load and safe for concurrent reads.
*/
package config
