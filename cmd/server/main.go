// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/kaiserhaus/internal/api"
	"github.com/tomtom215/kaiserhaus/internal/config"
	"github.com/tomtom215/kaiserhaus/internal/logging"
	"github.com/tomtom215/kaiserhaus/internal/supervisor"
	"github.com/tomtom215/kaiserhaus/internal/supervisor/services"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.LoggerConfig())

	logging.Info().
		Str("version", api.Version).
		Str("data_path", cfg.Data.Path).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Kaiserhaus with supervisor tree")

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	// The data layer loads the store; the HTTP server starts listening only
	// after the load finished. A failed load leaves every query route at 503.
	store := table.NewStore(cfg.Data.StoreOptions())

	handler := api.NewHandler(store, cfg)
	defer handler.Close()

	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	loader := services.NewTableLoaderService(store, cfg.Data.Source())
	tree.AddDataService(loader)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout).StartAfter(loader.Done()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Supervisor tree starting")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within shutdown timeout")
		}
	}

	logging.Info().Msg("Kaiserhaus stopped")
}
