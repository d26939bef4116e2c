// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package table

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// excelReader reads one worksheet with the first row as header. Cells are read
// raw; numeric cells whose number format shows a date are converted from Excel
// serials to time.Time here, so they load as timestamp columns.
type excelReader struct{}

func (excelReader) Read(ctx context.Context, src Source) (*rawTable, error) {
	f, err := excelize.OpenFile(src.Path)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(f)

	sheet := src.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", src.Path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header := make([]string, len(rows[0]))
	for j, h := range rows[0] {
		header[j] = strings.TrimSpace(h)
	}

	dates := newDateCells(f, sheet)

	body := rows[1:]
	raw := &rawTable{header: header, cells: make([][]any, len(header))}
	for j := range header {
		col := make([]any, len(body))
		for i, r := range body {
			if j >= len(r) {
				continue
			}
			col[i] = r[j]
			if ts, ok := dates.convert(j+1, i+2, r[j]); ok {
				col[i] = ts
			}
		}
		raw.cells[j] = col
	}
	return raw, nil
}

// dateCells converts serial numbers in date-formatted cells. Style lookups are
// memoized per style index.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{f: f, sheet: sheet, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// convert returns the timestamp for the cell at (col, row), 1-based, when the
// raw value is a serial number and the cell's number format is a date.
func (d *dateCells) convert(col, row int, value string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || serial <= 0 || serial > maxExcelSerial {
		return time.Time{}, false
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return time.Time{}, false
	}
	idx, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil || idx == 0 {
		return time.Time{}, false
	}
	isDate, seen := d.styles[idx]
	if !seen {
		isDate = d.styleIsDate(idx)
		d.styles[idx] = isDate
	}
	if !isDate {
		return time.Time{}, false
	}
	ts, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return time.Time{}, false
	}
	return ts.Round(time.Second), true
}

func (d *dateCells) styleIsDate(idx int) bool {
	style, err := d.f.GetStyle(idx)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormat(*style.CustomNumFmt)
	}
	return isBuiltinDateFormat(style.NumFmt)
}

// isBuiltinDateFormat reports built-in number formats that carry a calendar
// date. Time-only and duration formats (18-21, 45-47) stay numeric.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 31, id >= 34 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormat reports whether a custom number format shows a year or a day.
// Quoted literals, escaped characters and bracketed sections are ignored.
func isDateFormat(code string) bool {
	code = strings.ToLower(code)
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			inQuote = c != '"'
		case inBracket:
			inBracket = c != ']'
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\' || c == '_' || c == '*':
			i++
		case c == 'y' || c == 'd':
			return true
		}
	}
	return false
}
