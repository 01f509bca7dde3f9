package repository

import (
	"context"

	"github.com/tu-usuario/sedori-pro/internal/domain/entity"
)

// BatchRepository puerto de persistencia para lotes de venta y sus líneas.
type BatchRepository interface {
	CreateBatch(ctx context.Context, batch *entity.SaleBatch) error
	GetBatch(ctx context.Context, id string) (*entity.SaleBatch, error)
	// GetBatchForUpdate bloquea la fila del lote para serializar confirmaciones
	// concurrentes del mismo lote. Usar dentro de una transacción.
	GetBatchForUpdate(ctx context.Context, id string) (*entity.SaleBatch, error)
	UpdateBatch(ctx context.Context, batch *entity.SaleBatch) error
	ListByUser(ctx context.Context, userID string) ([]*entity.SaleBatch, error)

	CreateBatchItem(ctx context.Context, line *entity.SaleBatchItem) error
	ListBatchItems(ctx context.Context, batchID string) ([]*entity.SaleBatchItem, error)
	UpdateBatchItem(ctx context.Context, line *entity.SaleBatchItem) error
}
