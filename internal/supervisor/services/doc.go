// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

// Package services adapts the service's long-running components to the
// suture.Service interface.
//
//   - HTTPServerService runs an *http.Server and shuts it down gracefully
//     when its context is canceled. StartAfter delays listening until a
//     channel closes.
//   - TableLoaderService loads the order table once, then idles until
//     shutdown so the supervisor does not treat completion as a crash.
package services
