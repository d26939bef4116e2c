// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package table

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Source format names.
const (
	FormatCSV     = "csv"
	FormatTSV     = "tsv"
	FormatParquet = "parquet"
	FormatXLSX    = "xlsx"
)

// Source names the file the Store loads at startup.
type Source struct {
	// Path is the file location.
	Path string

	// Format overrides detection from the file extension.
	Format string

	// Sheet selects the XLSX worksheet. Empty means the first sheet.
	Sheet string
}

// DetectFormat returns the effective format of the source.
func (s Source) DetectFormat() string {
	if s.Format != "" {
		return strings.ToLower(s.Format)
	}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".csv", ".txt":
		return FormatCSV
	case ".tsv":
		return FormatTSV
	case ".parquet", ".pq":
		return FormatParquet
	case ".xlsx", ".xlsm":
		return FormatXLSX
	}
	return ""
}

// rawTable is what a reader hands to coercion: a header and one raw cell slice
// per column.
type rawTable struct {
	header []string
	cells  [][]any
}

// reader reads a whole source into raw cells.
type reader interface {
	Read(ctx context.Context, src Source) (*rawTable, error)
}

// readerFor picks the reader for a format.
func readerFor(format string) (reader, error) {
	switch format {
	case FormatCSV, FormatTSV, FormatParquet:
		return duckdbReader{}, nil
	case FormatXLSX:
		return excelReader{}, nil
	}
	return nil, fmt.Errorf("unsupported source format %q", format)
}
