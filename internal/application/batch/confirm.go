package batch

import (
	"context"
	"time"

	"github.com/tu-usuario/sedori-pro/internal/application/dto"
	"github.com/tu-usuario/sedori-pro/internal/domain"
	"github.com/tu-usuario/sedori-pro/internal/domain/entity"
	"github.com/tu-usuario/sedori-pro/internal/domain/repository"
)

// Confirm confirma un lote in_progress: fija el precio final de cada línea
// pendiente, descuenta la cantidad disponible de cada ítem y transiciona
// estados, todo dentro de una sola transacción.
//
// Por línea: la cantidad disponible baja con suelo en 0; si llega a 0 el ítem
// pasa a sold y se estampan precio (el de ESTA línea), comprador y fecha de
// hoy; si no, un ítem pending pasa a inventory. El lote queda confirmed.
//
// Re-confirmar un lote confirmado devuelve ErrBatchConfirmed sin tocar nada:
// un no-op silencioso descontaría cantidades dos veces.
func (uc *UseCase) Confirm(ctx context.Context, userID, batchID string, in dto.ConfirmBatchRequest) (*dto.BatchResponse, error) {
	batch, err := uc.ownedBatch(ctx, userID, batchID)
	if err != nil {
		return nil, err
	}
	if batch.Status == entity.BatchConfirmed {
		return nil, domain.ErrBatchConfirmed
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		batchRepo repository.BatchRepository,
	) error {
		// Re-leer el lote con la fila bloqueada: dos confirmaciones
		// concurrentes del mismo lote se serializan y la segunda falla.
		locked, err := batchRepo.GetBatchForUpdate(ctx, batch.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.Status == entity.BatchConfirmed {
			return domain.ErrBatchConfirmed
		}

		lines, err := batchRepo.ListBatchItems(ctx, locked.ID)
		if err != nil {
			return err
		}

		for _, line := range lines {
			if line.Status == entity.BatchConfirmed {
				continue
			}
			finalPrice, ok := in.FinalPrices[line.ID]
			if !ok || finalPrice.IsNegative() {
				return domain.ErrInvalidInput
			}

			price := finalPrice
			line.Status = entity.BatchConfirmed
			line.FinalPrice = &price
			line.ConfirmedAt = &now
			line.UpdatedAt = now
			if err := batchRepo.UpdateBatchItem(ctx, line); err != nil {
				return err
			}

			item, err := itemRepo.GetForUpdate(ctx, line.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}

			next := item.QuantityAvailable - line.Quantity
			if next < 0 {
				next = 0
			}
			item.QuantityAvailable = next
			if next == 0 {
				buyer := locked.Buyer
				saleDate := today
				item.Status = entity.StatusSold
				item.SalePrice = &price
				item.SaleLocation = &buyer
				item.SaleDate = &saleDate
			} else if item.Status == entity.StatusPending {
				// Recibido y parcialmente vendido: pasa a inventario activo.
				item.Status = entity.StatusInventory
			}
			item.UpdatedAt = now
			if err := itemRepo.Update(ctx, item); err != nil {
				return err
			}
		}

		locked.Status = entity.BatchConfirmed
		locked.ConfirmedAt = &now
		locked.UpdatedAt = now
		if err := batchRepo.UpdateBatch(ctx, locked); err != nil {
			return err
		}
		*batch = *locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}
