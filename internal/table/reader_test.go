// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package table

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  Source
		want string
	}{
		{Source{Path: "data/Base.xlsx"}, FormatXLSX},
		{Source{Path: "orders.CSV"}, FormatCSV},
		{Source{Path: "orders.tsv"}, FormatTSV},
		{Source{Path: "orders.parquet"}, FormatParquet},
		{Source{Path: "orders.dat", Format: "CSV"}, FormatCSV},
		{Source{Path: "orders.json"}, ""},
	}
	for _, tt := range tests {
		if got := tt.src.DetectFormat(); got != tt.want {
			t.Errorf("DetectFormat(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestScanQueryEscapesPath(t *testing.T) {
	t.Parallel()

	q := scanQuery(Source{Path: "/tmp/o'brien.csv"})
	want := "SELECT * FROM read_csv_auto('/tmp/o''brien.csv', header=true, all_varchar=true)"
	if q != want {
		t.Errorf("scanQuery = %q, want %q", q, want)
	}
}

func TestLoad_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	content := "order_id,order_datetime,platform,total_brl\n" +
		"1,2024-01-01 10:00:00,iFood,55.90\n" +
		"2,2024-01-02 11:30:00,Rappi,\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(DefaultOptions())
	if err := s.Load(context.Background(), Source{Path: path}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	tbl, err := s.Get()
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", tbl.Rows())
	}
	total, ok := tbl.Column("total_brl")
	if !ok {
		t.Fatal("total_brl column missing")
	}
	if total.Kind != KindReal {
		t.Errorf("total_brl kind = %v, want real", total.Kind)
	}
	if !total.IsMissing(1) {
		t.Error("empty total should be missing")
	}
	if info := s.Info(); info.Format != FormatCSV || info.Rows != 2 {
		t.Errorf("Info() = %+v", info)
	}
}

func TestLoad_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"id_pedido", "plataforma", "valor_total", "satisfacao_nivel"},
		{1, "iFood", 89.9, 5},
		{2, "Rappi", 42.5, nil},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	s := NewStore(DefaultOptions())
	if err := s.Load(context.Background(), Source{Path: path}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	tbl, _ := s.Get()
	if tbl.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", tbl.Rows())
	}
	platform, _ := tbl.Column("plataforma")
	if v, _ := platform.Text(1); v != "Rappi" {
		t.Errorf("plataforma[1] = %q, want Rappi", v)
	}
	score, _ := tbl.Column("satisfacao_nivel")
	if !score.IsMissing(1) {
		t.Error("empty score cell should be missing")
	}
}

func TestLoad_XLSXDateCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	first := time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)
	cells := map[string]any{
		"A1": "order_datetime", "B1": "total_brl", "C1": "prep_minutes",
		"A2": first, "B2": 55.9, "C2": 12,
		"A3": first.Add(26 * time.Hour), "B3": 42.5, "C3": 18,
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	s := NewStore(DefaultOptions())
	if err := s.Load(context.Background(), Source{Path: path}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	tbl, _ := s.Get()

	when, ok := tbl.Column("order_datetime")
	if !ok {
		t.Fatal("order_datetime column missing")
	}
	if when.Kind != KindTimestamp {
		t.Fatalf("order_datetime kind = %v, want timestamp", when.Kind)
	}
	if v, ok := when.Time(0); !ok || !v.Equal(first) {
		t.Errorf("order_datetime[0] = %v, want %v", v, first)
	}
	if v, ok := when.Time(1); !ok || !v.Equal(first.Add(26*time.Hour)) {
		t.Errorf("order_datetime[1] = %v, want %v", v, first.Add(26*time.Hour))
	}

	total, _ := tbl.Column("total_brl")
	if total.Kind != KindReal {
		t.Errorf("total_brl kind = %v, want real", total.Kind)
	}
	prep, _ := tbl.Column("prep_minutes")
	if prep.Kind == KindTimestamp {
		t.Error("plain numeric cells must not load as timestamps")
	}
}

func TestIsDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want bool
	}{
		{"dd/mm/yyyy hh:mm", true},
		{"[$-416]d/m/yy", true},
		{"yyyy-mm-dd", true},
		{"hh:mm:ss", false},
		{"[h]:mm", false},
		{"#,##0.00", false},
		{`"R$" #,##0.00`, false},
		{`0.0 "dias"`, false},
		{"General", false},
	}
	for _, tt := range tests {
		if got := isDateFormat(tt.code); got != tt.want {
			t.Errorf("isDateFormat(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestIsBuiltinDateFormat(t *testing.T) {
	t.Parallel()

	for id, want := range map[int]bool{0: false, 2: false, 14: true, 20: false, 22: true, 46: false} {
		if got := isBuiltinDateFormat(id); got != want {
			t.Errorf("isBuiltinDateFormat(%d) = %v, want %v", id, got, want)
		}
	}
}
