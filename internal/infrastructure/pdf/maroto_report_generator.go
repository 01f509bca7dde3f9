// Package pdf implementa la generación del informe mensual de beneficios.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + propietario + fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ítems / vendidos / en espera / valor inventario    │
//	│           ingresos / costo / beneficio / beneficio puntos    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Mes | Ingresos | Beneficio | Beneficio puntos        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/sedori-pro/internal/application/analytics"
	"github.com/tu-usuario/sedori-pro/internal/domain/profit"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ analytics.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa analytics.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMonthlyReport genera el PDF del informe y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMonthlyReport(
	_ context.Context,
	owner string,
	summary profit.Summary,
	series []profit.MonthBucket,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe mensual de beneficios", true).
		WithAuthor(owner, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(owner))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(series) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas registradas en los últimos meses.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, b := range series {
		m.AddRows(monthRow(b))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(
			"Beneficio = precio de venta - (precio de compra - puntos). "+
				"Valor de inventario calculado a precio de compra.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y propietario + fecha de generación (der).
func headerRow(owner string) core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("INFORME DE BENEFICIOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Serie mensual de ventas y márgenes", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(owner, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// summaryRows: dos filas de cuatro métricas cada una.
func summaryRows(s profit.Summary) []core.Row {
	metric := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 5,
			}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			metric("ÍTEMS TOTALES", fmt.Sprintf("%d", s.TotalItems)),
			metric("VENDIDOS", fmt.Sprintf("%d", s.SoldCount)),
			metric("EN ESPERA", fmt.Sprintf("%d", s.WaitingCount)),
			metric("VALOR INVENTARIO", money(s.InventoryValue)),
		),
		row.New(14).Add(
			metric("INGRESOS", money(s.TotalRevenue)),
			metric("COSTO TOTAL", money(s.TotalCost)),
			metric("BENEFICIO", money(s.TotalProfit)),
			metric("BENEFICIO PUNTOS", money(s.TotalPointProfit)),
		),
	}
}

// tableHeaderRow: cabecera de la tabla mensual.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Mes", 3, align.Left),
		h("Ingresos", 3, align.Right),
		h("Beneficio", 3, align.Right),
		h("Beneficio puntos", 3, align.Right),
	)
}

// monthRow: una fila por mes de la serie.
func monthRow(b profit.MonthBucket) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		cell(b.Month, 3, align.Left),
		cell(money(b.Revenue), 3, align.Right),
		cell(money(b.Profit), 3, align.Right),
		cell(money(b.PointProfit), 3, align.Right),
	)
}

// money formatea un decimal sin decimales con puntos de miles y prefijo ¥.
func money(d decimal.Decimal) string {
	s := d.StringFixed(0)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i, c := range []byte(s) {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		s = string(buf)
	}
	if neg {
		s = "-" + s
	}
	return "¥" + s
}
