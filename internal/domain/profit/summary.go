package profit

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sedori-pro/internal/domain/entity"
)

// seriesMonths meses que entran en la serie mensual del dashboard.
const seriesMonths = 6

// Summary métricas agregadas sobre una lista de ítems ya filtrada por el caller.
type Summary struct {
	TotalItems       int
	SoldCount        int
	WaitingCount     int             // ítems pending (comprados, sin recibir)
	TotalRevenue     decimal.Decimal // suma de precios de venta (solo sold)
	TotalCost        decimal.Decimal // suma de NetCost sobre TODOS los ítems
	TotalProfit      decimal.Decimal // suma de Profit (solo sold)
	TotalPointProfit decimal.Decimal // suma de PointProfit (solo sold)
	InventoryValue   decimal.Decimal // suma de precio de compra (solo inventory)
}

// Summarize calcula el resumen de beneficios.
// El costo total se acumula sobre todos los ítems sin importar estado; la
// valoración de inventario usa el precio de compra, no el costo neto.
func Summarize(items []*entity.Item) Summary {
	s := Summary{TotalItems: len(items)}
	for _, it := range items {
		s.TotalCost = s.TotalCost.Add(NetCost(it))
		switch it.Status {
		case entity.StatusSold:
			s.SoldCount++
			if it.SalePrice != nil {
				s.TotalRevenue = s.TotalRevenue.Add(*it.SalePrice)
			}
			s.TotalProfit = s.TotalProfit.Add(Profit(it))
			s.TotalPointProfit = s.TotalPointProfit.Add(PointProfit(it))
		case entity.StatusInventory:
			s.InventoryValue = s.InventoryValue.Add(it.PurchasePrice)
		case entity.StatusPending:
			s.WaitingCount++
		}
	}
	return s
}

// MonthBucket acumulado de un mes calendario con ventas.
type MonthBucket struct {
	Month       string // "2025-01" (año-mes de la fecha de venta, hora local)
	Revenue     decimal.Decimal
	Profit      decimal.Decimal
	PointProfit decimal.Decimal
}

// MonthlySeries agrupa los ítems vendidos por mes calendario de la fecha de
// venta y devuelve los últimos 6 meses con datos, en orden ascendente.
// Los meses sin ventas simplemente no aparecen (no se rellenan con cero).
func MonthlySeries(items []*entity.Item) []MonthBucket {
	buckets := make(map[string]*MonthBucket)
	for _, it := range items {
		if it.Status != entity.StatusSold || it.SaleDate == nil {
			continue
		}
		key := monthKey(it)
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Month: key}
			buckets[key] = b
		}
		if it.SalePrice != nil {
			b.Revenue = b.Revenue.Add(*it.SalePrice)
		}
		b.Profit = b.Profit.Add(Profit(it))
		b.PointProfit = b.PointProfit.Add(PointProfit(it))
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > seriesMonths {
		keys = keys[len(keys)-seriesMonths:]
	}

	series := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		series = append(series, *buckets[k])
	}
	return series
}

// MonthOverMonth variación porcentual de ingresos y beneficio entre los dos
// meses más recientes con ventas. nil significa "sin datos": menos de dos
// meses poblados, o el mes anterior en exactamente cero (evita dividir por
// cero; es un centinela deliberado, no un error).
type MonthOverMonth struct {
	Revenue *decimal.Decimal
	Profit  *decimal.Decimal
}

// DeltaMonthOverMonth calcula (actual - anterior) / abs(anterior) * 100 para
// ingresos y beneficio sobre la serie mensual de items.
func DeltaMonthOverMonth(items []*entity.Item) MonthOverMonth {
	series := MonthlySeries(items)
	if len(series) < 2 {
		return MonthOverMonth{}
	}
	cur := series[len(series)-1]
	prev := series[len(series)-2]
	return MonthOverMonth{
		Revenue: percentDelta(cur.Revenue, prev.Revenue),
		Profit:  percentDelta(cur.Profit, prev.Profit),
	}
}

func percentDelta(cur, prev decimal.Decimal) *decimal.Decimal {
	if prev.IsZero() {
		return nil
	}
	d := cur.Sub(prev).Div(prev.Abs()).Mul(decimal.NewFromInt(100))
	return &d
}

func monthKey(it *entity.Item) string {
	d := it.SaleDate.Local()
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
}
