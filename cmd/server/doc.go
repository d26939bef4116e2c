// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

/*
Package main is the entry point for the Kaiserhaus analytics server.

Kaiserhaus serves read-only analytics over a single table of retail orders
(the Base_Kaiserhaus workbook by default): KPIs, time series, distributions
and rankings for the overview, operations, satisfaction and finance
dashboards, plus a paged data explorer.

# Application Architecture

	RootSupervisor ("kaiserhaus")
	├── DataSupervisor ("data-layer")
	│   └── Table loader (reads the orders file once)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router, listens once the load is done)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Table store: loaded by the data layer before the HTTP server listens
 4. API handler and response cache
 5. Supervisor tree: Suture v4 process supervision
 6. HTTP Server: Chi router with middleware stack

# Configuration

	DATA_PATH=data/Base_Kaiserhaus.xlsx  # .xlsx, .csv, .tsv or .parquet
	DATA_SHEET=                          # workbook sheet, first sheet if empty
	LATE_THRESHOLD_MINUTES=45
	HTTP_PORT=8001
	API_CACHE_TTL=10m                    # 0 disables the response cache
	CORS_ORIGINS=*
	RATE_LIMIT_REQUESTS=300
	LOG_LEVEL=info                       # trace, debug, info, warn, error
	LOG_FORMAT=json                      # json or console

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for up to HTTP_SHUTDOWN_TIMEOUT.
*/
package main
