// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package schema

import (
	"errors"
	"sync"
	"testing"
)

func TestResolve_PortugueseAliases(t *testing.T) {
	t.Parallel()

	r := NewResolver([]string{"id_pedido", "data_pedido", "valor_total", "plataforma"})

	tests := []struct {
		field Field
		want  string
	}{
		{OrderID, "id_pedido"},
		{OrderDatetime, "data_pedido"},
		{TotalBRL, "valor_total"},
		{Platform, "plataforma"},
	}

	for _, tt := range tests {
		got, ok := r.Resolve(tt.field, "")
		if !ok {
			t.Errorf("Resolve(%s) unresolved, want %s", tt.field, tt.want)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%s) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestResolve_OverrideWins(t *testing.T) {
	t.Parallel()

	r := NewResolver([]string{"platform", "canal_venda"})

	got, ok := r.Resolve(Platform, "canal_venda")
	if !ok || got != "canal_venda" {
		t.Errorf("Resolve with override = %q, %v; want canal_venda, true", got, ok)
	}

	// The override is request scoped; the cache still holds the alias match.
	got, ok = r.Resolve(Platform, "")
	if !ok || got != "platform" {
		t.Errorf("Resolve without override = %q, %v; want platform, true", got, ok)
	}
}

func TestResolve_OverrideMissingFallsBackToAlias(t *testing.T) {
	t.Parallel()

	r := NewResolver([]string{"plataforma"})

	got, ok := r.Resolve(Platform, "does_not_exist")
	if !ok || got != "plataforma" {
		t.Errorf("Resolve = %q, %v; want plataforma, true", got, ok)
	}
}

func TestResolve_NormalizedMatching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		columns []string
		field   Field
		want    string
	}{
		{"upper case", []string{"TOTAL_BRL"}, TotalBRL, "TOTAL_BRL"},
		{"space for underscore", []string{"Macro Bairro"}, MacroBairro, "Macro Bairro"},
		{"surrounding whitespace", []string{"  plataforma "}, Platform, "  plataforma "},
		{"double space", []string{"eta  minutes_quote"}, ETAMinutes, "eta  minutes_quote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.columns)
			got, ok := r.Resolve(tt.field, "")
			if !ok || got != tt.want {
				t.Errorf("Resolve(%s) = %q, %v; want %q", tt.field, got, ok, tt.want)
			}
		})
	}
}

func TestResolve_AliasOrder(t *testing.T) {
	t.Parallel()

	// "total" and "valor_total" are both aliases; valor_total is declared first.
	r := NewResolver([]string{"total", "valor_total"})
	got, _ := r.Resolve(TotalBRL, "")
	if got != "valor_total" {
		t.Errorf("Resolve(total_brl) = %q, want valor_total", got)
	}
}

func TestResolve_Unresolved(t *testing.T) {
	t.Parallel()

	r := NewResolver([]string{"foo", "bar"})

	if col, ok := r.Resolve(DistanceKM, ""); ok {
		t.Errorf("Resolve(distance_km) = %q, want unresolved", col)
	}
	if _, ok := r.Resolve(Field("unknown_field"), ""); ok {
		t.Error("unknown field resolved")
	}

	_, err := r.Require(DistanceKM, "")
	var fe *FieldUnresolvedError
	if !errors.As(err, &fe) {
		t.Fatalf("Require error = %v, want *FieldUnresolvedError", err)
	}
	if fe.Field != DistanceKM {
		t.Errorf("error field = %s, want distance_km", fe.Field)
	}
	if !errors.Is(err, ErrFieldUnresolved) {
		t.Error("errors.Is(err, ErrFieldUnresolved) = false")
	}
}

func TestResolveFirst(t *testing.T) {
	t.Parallel()

	r := NewResolver([]string{"data"})

	got, ok := r.ResolveFirst("", OrderDatetime, OrderDate)
	if !ok || got != "data" {
		t.Errorf("ResolveFirst = %q, %v; want data, true", got, ok)
	}

	_, err := NewResolver(nil).RequireFirst("", OrderDatetime, OrderDate)
	var fe *FieldUnresolvedError
	if !errors.As(err, &fe) || fe.Field != OrderDatetime {
		t.Errorf("RequireFirst error = %v, want unresolved order_datetime", err)
	}
}

func TestFields(t *testing.T) {
	t.Parallel()

	r := NewResolver([]string{"plataforma", "nota"})
	fields := r.Fields()

	if len(fields) != len(All()) {
		t.Fatalf("len(Fields()) = %d, want %d", len(fields), len(All()))
	}
	byField := make(map[Field]Resolution)
	for _, f := range fields {
		byField[f.Field] = f
	}
	if got := byField[Platform]; !got.Resolved || got.Column != "plataforma" {
		t.Errorf("platform = %+v", got)
	}
	if got := byField[SatisfactionScore]; !got.Resolved || got.Column != "nota" {
		t.Errorf("satisfaction_score = %+v", got)
	}
	if got := byField[OrderID]; got.Resolved {
		t.Errorf("order_id resolved to %q, want unresolved", got.Column)
	}
}

func TestEveryFieldHasAliases(t *testing.T) {
	t.Parallel()

	for _, f := range All() {
		if len(Aliases(f)) == 0 {
			t.Errorf("canonical field %s has no aliases", f)
		}
	}
}

func TestResolve_Concurrent(t *testing.T) {
	t.Parallel()

	r := NewResolver([]string{"macro_bairro", "total_brl"})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if col, ok := r.Resolve(MacroBairro, ""); !ok || col != "macro_bairro" {
				t.Errorf("Resolve = %q, %v", col, ok)
			}
		}()
	}
	wg.Wait()
}
