// Kaiserhaus - Retail Order Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kaiserhaus

package schema

// Field is a canonical field name the engine programs against, independent of
// how the source spreadsheet spells the column.
type Field string

// Canonical fields.
const (
	OrderID               Field = "order_id"
	OrderDatetime         Field = "order_datetime"
	OrderDate             Field = "order_date"
	Platform              Field = "platform"
	OrderMode             Field = "order_mode"
	Status                Field = "status"
	MacroBairro           Field = "macro_bairro"
	ClassePedido          Field = "classe_pedido"
	TotalBRL              Field = "total_brl"
	NumItens              Field = "num_itens"
	PrepMinutes           Field = "tempo_preparo_minutos"
	DeliveryMinutes       Field = "actual_delivery_minutes"
	ETAMinutes            Field = "eta_minutes_quote"
	DistanceKM            Field = "distance_km"
	PlatformCommissionPct Field = "platform_commission_pct"
	SatisfactionScore     Field = "satisfaction_score"
	ClienteID             Field = "cliente_id"
	ClienteNome           Field = "cliente_nome"
)

// aliases lists accepted source spellings per canonical field. Order matters:
// the first spelling present in the table wins.
var aliases = map[Field][]string{
	OrderID:               {"order_id", "id_pedido", "pedido_id", "id"},
	OrderDatetime:         {"order_datetime", "data_pedido", "created_at", "order_date"},
	OrderDate:             {"order_date", "data", "dt", "date"},
	Platform:              {"platform", "plataforma"},
	OrderMode:             {"order_mode", "modo_pedido", "channel"},
	Status:                {"status", "order_status", "delivery_status"},
	MacroBairro:           {"macro_bairro", "macro_bairros", "macro_bairro_nome"},
	ClassePedido:          {"classe_pedido", "order_class", "classe"},
	TotalBRL:              {"total_brl", "valor_total", "total"},
	NumItens:              {"num_itens", "qtd_itens", "items_count"},
	PrepMinutes:           {"tempo_preparo_minutos", "prep_minutes", "preparo_min"},
	DeliveryMinutes:       {"actual_delivery_minutes", "delivery_minutes", "tempo_entrega_min", "delivery_time"},
	ETAMinutes:            {"eta_minutes_quote", "eta_minutos", "eta_min"},
	DistanceKM:            {"distance_km", "distancia_km", "km"},
	PlatformCommissionPct: {"platform_commission_pct", "platform_commision_pct", "taxa_plataforma"},
	SatisfactionScore:     {"satisfacao_nivel", "satisfaction_score", "satisfacao", "satisfaction", "nota", "nota_satisfacao"},
	ClienteID:             {"cliente_id", "customer_id", "id_cliente"},
	ClienteNome:           {"cliente_nome", "customer_name", "nome_cliente", "cliente", "user_name"},
}

// order fixes the listing order of Fields().
var order = []Field{
	OrderID, OrderDatetime, OrderDate, Platform, OrderMode, Status, MacroBairro,
	ClassePedido, TotalBRL, NumItens, PrepMinutes, DeliveryMinutes, ETAMinutes,
	DistanceKM, PlatformCommissionPct, SatisfactionScore, ClienteID, ClienteNome,
}

// All returns every canonical field in listing order.
func All() []Field {
	out := make([]Field, len(order))
	copy(out, order)
	return out
}

// Aliases returns the accepted spellings for f, or nil for an unknown field.
func Aliases(f Field) []string {
	list := aliases[f]
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Known reports whether f has an alias list.
func Known(f Field) bool {
	_, ok := aliases[f]
	return ok
}

// Overrides carries request-scoped column names keyed by canonical field,
// populated from the *_col query parameters.
type Overrides map[Field]string

// Get returns the override for f, or "" when none was supplied.
func (o Overrides) Get(f Field) string {
	if o == nil {
		return ""
	}
	return o[f]
}

// Any reports whether an override was supplied for any of fields.
func (o Overrides) Any(fields ...Field) bool {
	for _, f := range fields {
		if o.Get(f) != "" {
			return true
		}
	}
	return false
}
