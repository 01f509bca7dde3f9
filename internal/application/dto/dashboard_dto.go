package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs agregados del usuario más la serie mensual (últimos 6 meses con
// ventas) y la variación mes a mes. Los campos mom_* van ausentes cuando no
// hay datos suficientes (menos de dos meses, o mes anterior en cero).
type DashboardSummaryDTO struct {
	TotalItems       int             `json:"total_items"`
	SoldCount        int             `json:"sold_count"`
	WaitingCount     int             `json:"waiting_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	TotalPointProfit decimal.Decimal `json:"total_point_profit"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`

	Monthly []MonthBucketDTO `json:"monthly"`

	MoMRevenue *decimal.Decimal `json:"mom_revenue,omitempty"` // % vs mes anterior
	MoMProfit  *decimal.Decimal `json:"mom_profit,omitempty"`  // % vs mes anterior
}

// MonthBucketDTO acumulado de un mes calendario con ventas.
type MonthBucketDTO struct {
	Month       string          `json:"month"` // "2025-01"
	Revenue     decimal.Decimal `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
	PointProfit decimal.Decimal `json:"point_profit"`
}
