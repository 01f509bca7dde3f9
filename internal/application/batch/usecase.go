package batch

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/sedori-pro/internal/application/dto"
	"github.com/tu-usuario/sedori-pro/internal/domain"
	"github.com/tu-usuario/sedori-pro/internal/domain/entity"
	"github.com/tu-usuario/sedori-pro/internal/domain/repository"
)

// UseCase motor de lotes de venta.
type UseCase struct {
	txRunner  TxRunner
	itemRepo  repository.ItemRepository
	batchRepo repository.BatchRepository
}

// NewUseCase construye el motor.
func NewUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, batchRepo repository.BatchRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, batchRepo: batchRepo}
}

// Create crea un lote en estado in_progress con una línea por selección,
// snapshotteando nombre, precio de compra y puntos de cada ítem. Los ítems NO
// se tocan: el lote no reserva cantidad hasta confirmarse.
//
// La cabecera y sus N líneas se escriben en una sola transacción, re-validando
// la disponibilidad con la fila bloqueada.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	buyer := strings.TrimSpace(in.Buyer)
	if buyer == "" || len(in.Selections) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}
	if in.ShippingCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in.Selections))
	for _, sel := range in.Selections {
		if sel.ItemID == "" || sel.Quantity < 1 || seen[sel.ItemID] {
			return nil, domain.ErrInvalidInput
		}
		seen[sel.ItemID] = true
	}

	// Validación de lectura fuera de la transacción; la definitiva se repite
	// dentro con la fila bloqueada.
	for _, sel := range in.Selections {
		item, err := uc.itemRepo.GetByID(ctx, sel.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		if item.UserID != userID {
			return nil, domain.ErrForbidden
		}
		if !item.Sellable() || sel.Quantity > item.QuantityAvailable {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	batch := &entity.SaleBatch{
		ID:           uuid.New().String(),
		UserID:       userID,
		Method:       in.Method,
		Buyer:        buyer,
		Campaign:     strings.TrimSpace(in.Campaign),
		ShippingCost: in.ShippingCost,
		Status:       entity.BatchInProgress,
		ItemCount:    len(in.Selections),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		batchRepo repository.BatchRepository,
	) error {
		if err := batchRepo.CreateBatch(ctx, batch); err != nil {
			return err
		}
		for _, sel := range in.Selections {
			item, err := itemRepo.GetForUpdate(ctx, sel.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if !item.Sellable() || sel.Quantity > item.QuantityAvailable {
				return domain.ErrInvalidInput
			}
			line := &entity.SaleBatchItem{
				ID:            uuid.New().String(),
				BatchID:       batch.ID,
				UserID:        userID,
				ItemID:        item.ID,
				ProductName:   item.ProductName,
				Quantity:      sel.Quantity,
				PurchasePrice: item.PurchasePrice,
				Point:         item.Point,
				Status:        entity.BatchInProgress,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := batchRepo.CreateBatchItem(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// List lotes del usuario, más reciente primero.
func (uc *UseCase) List(ctx context.Context, userID string) (*dto.BatchListResponse, error) {
	list, err := uc.batchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	batches := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		batches = append(batches, *toBatchResponse(b))
	}
	return &dto.BatchListResponse{Batches: batches}, nil
}

// LoadConfirmable devuelve las líneas aún sin confirmar de un lote, cada una
// con su precio final sugerido.
func (uc *UseCase) LoadConfirmable(ctx context.Context, userID, batchID string) (*dto.ConfirmableListResponse, error) {
	batch, err := uc.ownedBatch(ctx, userID, batchID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.batchRepo.ListBatchItems(ctx, batch.ID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ConfirmableItemResponse, 0, len(lines))
	for _, l := range lines {
		if l.Status == entity.BatchConfirmed {
			continue
		}
		items = append(items, dto.ConfirmableItemResponse{
			ID:             l.ID,
			ItemID:         l.ItemID,
			ProductName:    l.ProductName,
			Quantity:       l.Quantity,
			PurchasePrice:  l.PurchasePrice,
			Point:          l.Point,
			SuggestedPrice: l.SuggestedPrice(),
		})
	}
	return &dto.ConfirmableListResponse{BatchID: batch.ID, Items: items}, nil
}

func (uc *UseCase) ownedBatch(ctx context.Context, userID, batchID string) (*entity.SaleBatch, error) {
	batch, err := uc.batchRepo.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return batch, nil
}

func toBatchResponse(b *entity.SaleBatch) *dto.BatchResponse {
	if b == nil {
		return nil
	}
	return &dto.BatchResponse{
		ID:           b.ID,
		Method:       b.Method,
		Buyer:        b.Buyer,
		Campaign:     b.Campaign,
		ShippingCost: b.ShippingCost,
		Status:       b.Status,
		ItemCount:    b.ItemCount,
		ConfirmedAt:  b.ConfirmedAt,
		CreatedAt:    b.CreatedAt,
	}
}
