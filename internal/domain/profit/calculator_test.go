package profit_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/sedori-pro/internal/domain/entity"
	"github.com/tu-usuario/sedori-pro/internal/domain/profit"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func soldItem(purchase, point, sale float64, saleDate time.Time) *entity.Item {
	price := decimal.NewFromFloat(sale)
	return &entity.Item{
		Status:        entity.StatusSold,
		PurchasePrice: decimal.NewFromFloat(purchase),
		Point:         decimal.NewFromFloat(point),
		SalePrice:     &price,
		SaleDate:      &saleDate,
	}
}

func unsoldItem(status string, purchase, point float64) *entity.Item {
	return &entity.Item{
		Status:        status,
		PurchasePrice: decimal.NewFromFloat(purchase),
		Point:         decimal.NewFromFloat(point),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// NetCost / Profit / PointProfit
// ──────────────────────────────────────────────────────────────────────────────

func TestNetCost_RestaPuntosDelPrecioDeCompra(t *testing.T) {
	it := unsoldItem(entity.StatusInventory, 1000, 300)
	assert.True(t, decimal.NewFromInt(700).Equal(profit.NetCost(it)),
		"el costo neto debe ser compra - puntos")
}

func TestNetCost_PuntosMayoresQueCompra_QuedaNegativo(t *testing.T) {
	// Los puntos pueden superar el precio de compra; el costo negativo se
	// conserva tal cual, no se recorta a cero.
	it := unsoldItem(entity.StatusInventory, 500, 800)
	assert.True(t, decimal.NewFromInt(-300).Equal(profit.NetCost(it)),
		"un costo neto negativo debe conservarse")
}

func TestProfit_ItemVendido(t *testing.T) {
	it := soldItem(1000, 200, 1500, time.Now())
	// 1500 - (1000 - 200) = 700
	assert.True(t, decimal.NewFromInt(700).Equal(profit.Profit(it)))
}

func TestProfit_SinPrecioDeVenta_EsCero(t *testing.T) {
	it := unsoldItem(entity.StatusInventory, 1000, 200)
	assert.True(t, profit.Profit(it).IsZero(),
		"sin precio de venta no hay beneficio realizado")
}

func TestProfit_VentaPorDebajoDelCosto_EsNegativo(t *testing.T) {
	it := soldItem(2000, 0, 1500, time.Now())
	assert.True(t, decimal.NewFromInt(-500).Equal(profit.Profit(it)))
}

func TestPointProfit_IgnoraLosPuntos(t *testing.T) {
	it := soldItem(1000, 200, 1500, time.Now())
	// 1500 - 1000 = 500 (los puntos no cuentan)
	assert.True(t, decimal.NewFromInt(500).Equal(profit.PointProfit(it)))
}

func TestPointProfit_SinPrecioDeVenta_EsCero(t *testing.T) {
	it := unsoldItem(entity.StatusPending, 1000, 200)
	assert.True(t, profit.PointProfit(it).IsZero())
}
