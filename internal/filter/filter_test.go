// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package filter

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/tomtom215/kaiserhaus/internal/schema"
	"github.com/tomtom215/kaiserhaus/internal/table"
)

func newStore(t *testing.T, header []string, records [][]string) *table.Store {
	t.Helper()
	tbl, err := table.FromRecords(header, records, table.DefaultCoerceRatio)
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	return table.NewStoreWithTable(tbl, table.DefaultOptions())
}

// ordersStore has 1000 rows: 15 January iFood orders, 25 January Rappi orders
// and 960 February iFood orders.
func ordersStore(t *testing.T) *table.Store {
	t.Helper()
	header := []string{"id_pedido", "data_pedido", "plataforma", "valor_total", "macro_bairro", "satisfacao_nivel", "status"}
	records := make([][]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		date := fmt.Sprintf("2024-01-%02d 12:00:00", i%28+1)
		platform := "iFood"
		switch {
		case i >= 15 && i < 40:
			platform = "Rappi"
		case i >= 40:
			date = fmt.Sprintf("2024-02-%02d 09:30:00", i%28+1)
		}
		status := "no prazo"
		if i%10 == 0 {
			status = "atrasado"
		}
		records = append(records, []string{
			fmt.Sprint(i + 1), date, platform, fmt.Sprint(20 + i%50),
			[]string{"Centro", "Norte", "Sul"}[i%3], fmt.Sprint(i%5 + 1), status,
		})
	}
	return newStore(t, header, records)
}

func TestCompile_JanuaryIFood(t *testing.T) {
	t.Parallel()

	store := ordersStore(t)
	res, err := Compile(context.Background(), store, Spec{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Platform:  []string{"iFood"},
	}, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := res.Count(); got != 15 {
		t.Errorf("Count() = %d, want 15", got)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
}

func TestCompile_EmptySetIsNoop(t *testing.T) {
	t.Parallel()

	store := ordersStore(t)
	ctx := context.Background()

	omitted, err := Compile(ctx, store, Spec{StartDate: "2024-02-01"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, empty := range [][]string{{}, {""}, {"  ", ""}} {
		got, err := Compile(ctx, store, Spec{StartDate: "2024-02-01", Platform: empty}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got.Mask, omitted.Mask) {
			t.Errorf("Platform=%q mask differs from omitted filter", empty)
		}
	}
	if omitted.Count() != 960 {
		t.Errorf("Count() = %d, want 960", omitted.Count())
	}
}

func TestCompile_Deterministic(t *testing.T) {
	t.Parallel()

	store := ordersStore(t)
	spec := Spec{Platform: []string{"rappi", "IFOOD "}, MacroBairro: []string{"norte"}, ScoreMin: "2", ScoreMax: "4"}

	a, err := Compile(context.Background(), store, spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compile(context.Background(), store, spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same spec produced different results")
	}
	if !reflect.DeepEqual(a.View().Indices(), b.View().Indices()) {
		t.Error("same spec produced different views")
	}
}

func TestCompile_EndDateInclusive(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{"data_pedido"}, [][]string{
		{"2024-01-31 23:59:59"},
		{"2024-02-01 00:00:00"},
		{""},
	})

	tests := []struct {
		name string
		spec Spec
		want []int
	}{
		{"date-only end covers the day", Spec{EndDate: "2024-01-31"}, []int{0}},
		{"timestamp end inclusive", Spec{EndDate: "2024-02-01 00:00:00"}, []int{0, 1}},
		{"start inclusive", Spec{StartDate: "2024-02-01"}, []int{1}},
		{"rfc3339", Spec{StartDate: "2024-01-31T23:59:59Z", EndDate: "2024-01-31T23:59:59Z"}, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compile(context.Background(), store, tt.spec, nil)
			if err != nil {
				t.Fatal(err)
			}
			if got := res.View().Indices(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rows = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompile_BadFilter(t *testing.T) {
	t.Parallel()

	// No datetime or score column: literals are still validated.
	store := newStore(t, []string{"plataforma"}, [][]string{{"iFood"}})

	tests := []struct {
		spec Spec
		dim  string
	}{
		{Spec{StartDate: "31/01/2024"}, DimStartDate},
		{Spec{EndDate: "yesterday"}, DimEndDate},
		{Spec{ScoreMin: "high"}, DimScoreMin},
		{Spec{ScoreMax: "4,5"}, DimScoreMax},
		{Spec{ScoreMin: "NaN"}, DimScoreMin},
		{Spec{ScoreMin: "Inf"}, DimScoreMin},
		{Spec{ScoreMax: "-inf"}, DimScoreMax},
		{Spec{DeliveryStatus: "maybe"}, DimDeliveryStatus},
	}
	for _, tt := range tests {
		_, err := Compile(context.Background(), store, tt.spec, nil)
		var bf *BadFilterError
		if !errors.As(err, &bf) {
			t.Errorf("Compile(%+v) error = %v, want *BadFilterError", tt.spec, err)
			continue
		}
		if bf.Dimension != tt.dim {
			t.Errorf("Dimension = %q, want %q", bf.Dimension, tt.dim)
		}
		if !errors.Is(err, ErrBadFilter) {
			t.Error("errors.Is(err, ErrBadFilter) = false")
		}
	}
}

func TestCompile_UnresolvedDimensionWarns(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{"plataforma"}, [][]string{{"iFood"}, {"Rappi"}})

	res, err := Compile(context.Background(), store, Spec{
		MacroBairro: []string{"Centro"},
		StartDate:   "2024-01-01",
	}, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Count() != 2 {
		t.Errorf("Count() = %d, want 2 (unresolved dimensions are no-ops)", res.Count())
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("Warnings = %v, want 2", res.Warnings)
	}
	if res.Warnings[0].Dimension != DimStartDate || res.Warnings[1].Field != schema.MacroBairro {
		t.Errorf("Warnings = %+v", res.Warnings)
	}
}

func TestCompile_DeliveryStatus(t *testing.T) {
	t.Parallel()

	store := ordersStore(t)

	late, err := Compile(context.Background(), store, Spec{DeliveryStatus: "atrasado"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	onTime, err := Compile(context.Background(), store, Spec{DeliveryStatus: "NO_PRAZO"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if late.Count() != 100 || onTime.Count() != 900 {
		t.Errorf("late=%d onTime=%d, want 100 and 900", late.Count(), onTime.Count())
	}
}

func TestCompile_Override(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{"plataforma", "canal"}, [][]string{
		{"iFood", "app"},
		{"iFood", "site"},
	})

	res, err := Compile(context.Background(), store, Spec{Platform: []string{"site"}}, Overrides{schema.Platform: "canal"})
	if err != nil {
		t.Fatal(err)
	}
	if got := res.View().Indices(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("rows = %v, want [1]", got)
	}

	// The override does not leak into the next request.
	res, err = Compile(context.Background(), store, Spec{Platform: []string{"site"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Count() != 0 {
		t.Errorf("Count() = %d, want 0", res.Count())
	}
}

func TestCompile_ShortCircuit(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{"plataforma"}, [][]string{{"iFood"}})
	res, err := Compile(context.Background(), store, Spec{
		Platform:       []string{"Rappi"},
		DeliveryStatus: "atrasado",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Count() != 0 {
		t.Errorf("Count() = %d, want 0", res.Count())
	}
	// The status dimension is never reached, so its missing inputs are not reported.
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
}

func TestCompile_DataUnavailable(t *testing.T) {
	t.Parallel()

	store := table.NewStore(table.DefaultOptions())
	_, err := Compile(context.Background(), store, Spec{}, nil)
	if !errors.Is(err, table.ErrDataUnavailable) {
		t.Errorf("error = %v, want ErrDataUnavailable", err)
	}
}

func TestViewHelpers(t *testing.T) {
	t.Parallel()

	v := NewView(Mask{false, true, true, false})
	if !reflect.DeepEqual(v.Indices(), []int{1, 2}) {
		t.Errorf("Indices() = %v", v.Indices())
	}
	if AllRows(3).Len() != 3 {
		t.Errorf("AllRows(3).Len() = %d", AllRows(3).Len())
	}
}
