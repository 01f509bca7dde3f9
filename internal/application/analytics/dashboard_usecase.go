// Package analytics contiene el caso de uso read-only del dashboard de
// beneficios: resumen agregado, serie mensual, variación mes a mes y el
// informe PDF mensual. No tiene camino de escritura hacia el modelo.
package analytics

import (
	"context"
	"fmt"

	"github.com/tu-usuario/sedori-pro/internal/application/dto"
	"github.com/tu-usuario/sedori-pro/internal/domain/profit"
	"github.com/tu-usuario/sedori-pro/internal/domain/repository"
)

// ReportGenerator puerto para la representación PDF del informe mensual.
type ReportGenerator interface {
	GenerateMonthlyReport(ctx context.Context, owner string, summary profit.Summary, series []profit.MonthBucket) ([]byte, error)
}

// DashboardUseCase deriva las métricas del dashboard a partir de los ítems del
// usuario. Determinista y re-ejecutable sobre cualquier subconjunto: todo el
// cálculo vive en el paquete puro domain/profit.
type DashboardUseCase struct {
	itemRepo  repository.ItemRepository
	reportGen ReportGenerator
}

// NewDashboardUseCase construye el caso de uso. reportGen puede ser nil si no
// se expone el informe PDF.
func NewDashboardUseCase(itemRepo repository.ItemRepository, reportGen ReportGenerator) *DashboardUseCase {
	return &DashboardUseCase{itemRepo: itemRepo, reportGen: reportGen}
}

// GetSummary construye el DashboardSummaryDTO del usuario, opcionalmente
// filtrado por canal.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID, channel string) (*dto.DashboardSummaryDTO, error) {
	items, err := uc.itemRepo.ListByUser(ctx, userID, repository.ItemFilter{Channel: channel})
	if err != nil {
		return nil, fmt.Errorf("dashboard: listar ítems: %w", err)
	}

	summary := profit.Summarize(items)
	series := profit.MonthlySeries(items)
	mom := profit.DeltaMonthOverMonth(items)

	out := &dto.DashboardSummaryDTO{
		TotalItems:       summary.TotalItems,
		SoldCount:        summary.SoldCount,
		WaitingCount:     summary.WaitingCount,
		TotalRevenue:     summary.TotalRevenue,
		TotalCost:        summary.TotalCost,
		TotalProfit:      summary.TotalProfit,
		TotalPointProfit: summary.TotalPointProfit,
		InventoryValue:   summary.InventoryValue,
		Monthly:          make([]dto.MonthBucketDTO, 0, len(series)),
		MoMRevenue:       mom.Revenue,
		MoMProfit:        mom.Profit,
	}
	for _, b := range series {
		out.Monthly = append(out.Monthly, dto.MonthBucketDTO{
			Month:       b.Month,
			Revenue:     b.Revenue,
			Profit:      b.Profit,
			PointProfit: b.PointProfit,
		})
	}
	return out, nil
}

// MonthlyReport genera el informe mensual de beneficios en PDF.
func (uc *DashboardUseCase) MonthlyReport(ctx context.Context, userID, owner, channel string) ([]byte, error) {
	if uc.reportGen == nil {
		return nil, fmt.Errorf("dashboard: generador de informes no configurado")
	}
	items, err := uc.itemRepo.ListByUser(ctx, userID, repository.ItemFilter{Channel: channel})
	if err != nil {
		return nil, fmt.Errorf("dashboard: listar ítems: %w", err)
	}
	return uc.reportGen.GenerateMonthlyReport(ctx, owner, profit.Summarize(items), profit.MonthlySeries(items))
}
