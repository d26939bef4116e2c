// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package table

import "errors"

// ErrDataUnavailable is returned (wrapped) whenever the table could not be
// loaded or has not been loaded yet. It is fatal to readiness.
var ErrDataUnavailable = errors.New("data unavailable")
