// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

/*
Package supervisor runs the long-lived parts of the service under a suture v4
supervisor tree.

	root ("kaiserhaus")
	├── data-layer
	│   └── TableLoaderService
	└── api-layer
	    └── HTTPServerService

The HTTP server is gated on the loader: it does not listen until the order
table load has finished, successfully or not. After a failed load readiness
reports 503 and every query answers DATA_UNAVAILABLE. A crashed HTTP server
is restarted by the api layer without reloading data.

Supervisor events are logged through sutureslog on the slog adapter of the
logging package:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	loader := services.NewTableLoaderService(store, cfg.Data.Source())
	tree.AddDataService(loader)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout).StartAfter(loader.Done()))
	err = tree.Serve(ctx)
*/
package supervisor
