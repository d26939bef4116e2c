// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package table

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver registration

	"github.com/tomtom215/kaiserhaus/internal/logging"
)

// duckdbReader reads delimited and Parquet files through a throwaway in-memory
// DuckDB connection. CSV is read as all-VARCHAR so that type decisions stay
// with coerceColumn; Parquet keeps its native types.
type duckdbReader struct{}

func (duckdbReader) Read(ctx context.Context, src Source) (*rawTable, error) {
	if _, err := os.Stat(src.Path); err != nil {
		return nil, err
	}

	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer closeQuietly(conn)

	rows, err := conn.QueryContext(ctx, scanQuery(src))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", src.Path, err)
	}
	defer closeQuietly(rows)

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("source %s has no columns", src.Path)
	}

	raw := &rawTable{header: header, cells: make([][]any, len(header))}
	values := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(raw.cells[0])+1, err)
		}
		for j, v := range values {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			raw.cells[j] = append(raw.cells[j], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return raw, nil
}

// scanQuery builds the table-function query for the source. The path is inlined
// as an escaped string literal.
func scanQuery(src Source) string {
	path := "'" + strings.ReplaceAll(src.Path, "'", "''") + "'"
	switch src.DetectFormat() {
	case FormatParquet:
		return fmt.Sprintf("SELECT * FROM read_parquet(%s)", path)
	case FormatTSV:
		return fmt.Sprintf("SELECT * FROM read_csv_auto(%s, header=true, all_varchar=true, delim='\t')", path)
	default:
		return fmt.Sprintf("SELECT * FROM read_csv_auto(%s, header=true, all_varchar=true)", path)
	}
}

type closer interface {
	Close() error
}

func closeQuietly(c closer) {
	if err := c.Close(); err != nil {
		logging.Debug().Err(err).Msg("close failed")
	}
}
