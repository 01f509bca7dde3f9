// Package profit contiene las funciones puras de cálculo de beneficio por
// ítem y la agregación para el dashboard. Sin estado, sin efectos; cualquier
// capa de presentación puede consumirlas sobre cualquier subconjunto de ítems.
package profit

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sedori-pro/internal/domain/entity"
)

// NetCost es el costo real del ítem: precio de compra menos puntos.
// Los puntos pueden superar el precio; el resultado negativo se conserva
// (reducción de costo, no se recorta a cero).
func NetCost(item *entity.Item) decimal.Decimal {
	return item.PurchasePrice.Sub(item.Point)
}

// Profit devuelve el beneficio realizado: precio de venta - costo real.
// Sin precio de venta registrado devuelve 0 ("sin beneficio realizado aún").
func Profit(item *entity.Item) decimal.Decimal {
	if item.SalePrice == nil {
		return decimal.Zero
	}
	return item.SalePrice.Sub(NetCost(item))
}

// PointProfit devuelve el beneficio ignorando los puntos: venta - compra.
// Aísla la contribución de los puntos al beneficio total.
func PointProfit(item *entity.Item) decimal.Decimal {
	if item.SalePrice == nil {
		return decimal.Zero
	}
	return item.SalePrice.Sub(item.PurchasePrice)
}
