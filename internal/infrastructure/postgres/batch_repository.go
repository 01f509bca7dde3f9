package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/sedori-pro/internal/domain/entity"
	"github.com/tu-usuario/sedori-pro/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `
	id, user_id, method, buyer, campaign, shipping_cost, status, item_count,
	confirmed_at, created_at, updated_at`

const batchItemColumns = `
	id, batch_id, user_id, item_id, product_name, quantity, purchase_price,
	point, status, final_price, confirmed_at, created_at, updated_at`

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// CreateBatch persiste la cabecera de un lote.
func (r *BatchRepo) CreateBatch(ctx context.Context, b *entity.SaleBatch) error {
	query := `
		INSERT INTO sale_batches (id, user_id, method, buyer, campaign, shipping_cost, status, item_count, confirmed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.UserID, b.Method, b.Buyer, b.Campaign, b.ShippingCost,
		b.Status, b.ItemCount, b.ConfirmedAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale batch: %w", err)
	}
	return nil
}

// GetBatch obtiene un lote por ID. Devuelve (nil, nil) si no existe.
func (r *BatchRepo) GetBatch(ctx context.Context, id string) (*entity.SaleBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM sale_batches WHERE id = $1`
	return r.scanBatch(r.q.QueryRow(ctx, query, id), "get sale batch")
}

// GetBatchForUpdate obtiene un lote bloqueando su fila (SELECT ... FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *BatchRepo) GetBatchForUpdate(ctx context.Context, id string) (*entity.SaleBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM sale_batches WHERE id = $1 FOR UPDATE`
	return r.scanBatch(r.q.QueryRow(ctx, query, id), "get sale batch for update")
}

// UpdateBatch actualiza la cabecera de un lote.
func (r *BatchRepo) UpdateBatch(ctx context.Context, b *entity.SaleBatch) error {
	query := `
		UPDATE sale_batches SET method = $2, buyer = $3, campaign = $4, shipping_cost = $5,
			status = $6, item_count = $7, confirmed_at = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Method, b.Buyer, b.Campaign, b.ShippingCost,
		b.Status, b.ItemCount, b.ConfirmedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale batch: %w", err)
	}
	return nil
}

// ListByUser lista los lotes del usuario, más recientes primero.
func (r *BatchRepo) ListByUser(ctx context.Context, userID string) ([]*entity.SaleBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM sale_batches WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list sale batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleBatch
	for rows.Next() {
		var b entity.SaleBatch
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.Method, &b.Buyer, &b.Campaign, &b.ShippingCost,
			&b.Status, &b.ItemCount, &b.ConfirmedAt, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// CreateBatchItem persiste una línea de lote con su snapshot del ítem.
func (r *BatchRepo) CreateBatchItem(ctx context.Context, li *entity.SaleBatchItem) error {
	query := `
		INSERT INTO sale_batch_items (id, batch_id, user_id, item_id, product_name, quantity, purchase_price, point, status, final_price, confirmed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		li.ID, li.BatchID, li.UserID, li.ItemID, li.ProductName, li.Quantity,
		li.PurchasePrice, li.Point, li.Status, li.FinalPrice, li.ConfirmedAt,
		li.CreatedAt, li.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale batch item: %w", err)
	}
	return nil
}

// ListBatchItems lista las líneas de un lote en orden de inserción.
func (r *BatchRepo) ListBatchItems(ctx context.Context, batchID string) ([]*entity.SaleBatchItem, error) {
	query := `SELECT ` + batchItemColumns + ` FROM sale_batch_items WHERE batch_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list sale batch items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleBatchItem
	for rows.Next() {
		var li entity.SaleBatchItem
		if err := rows.Scan(
			&li.ID, &li.BatchID, &li.UserID, &li.ItemID, &li.ProductName, &li.Quantity,
			&li.PurchasePrice, &li.Point, &li.Status, &li.FinalPrice, &li.ConfirmedAt,
			&li.CreatedAt, &li.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale batch item: %w", err)
		}
		list = append(list, &li)
	}
	return list, rows.Err()
}

// UpdateBatchItem actualiza una línea de lote (estado, precio final, confirmación).
func (r *BatchRepo) UpdateBatchItem(ctx context.Context, li *entity.SaleBatchItem) error {
	query := `
		UPDATE sale_batch_items SET status = $2, final_price = $3, confirmed_at = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, li.ID, li.Status, li.FinalPrice, li.ConfirmedAt, li.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale batch item: %w", err)
	}
	return nil
}

func (r *BatchRepo) scanBatch(row pgx.Row, op string) (*entity.SaleBatch, error) {
	var b entity.SaleBatch
	err := row.Scan(
		&b.ID, &b.UserID, &b.Method, &b.Buyer, &b.Campaign, &b.ShippingCost,
		&b.Status, &b.ItemCount, &b.ConfirmedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}
