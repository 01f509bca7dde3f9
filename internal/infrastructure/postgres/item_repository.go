package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/sedori-pro/internal/domain/entity"
	"github.com/tu-usuario/sedori-pro/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// Columnas de items con la normalización de cantidades legacy aplicada en el
// scan: filas antiguas pueden traer quantity_total o quantity_available en
// NULL, y se coalescen entre sí con fallback 1. Todo lector pasa por aquí.
const itemColumns = `
	id, user_id, channel, product_name,
	COALESCE(quantity_total, quantity_available, 1),
	COALESCE(quantity_available, quantity_total, 1),
	purchase_price, point, purchase_date, purchase_location, status,
	sale_price, sale_location, sale_date, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo ítem.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, user_id, channel, product_name, quantity_total, quantity_available, purchase_price, point, purchase_date, purchase_location, status, sale_price, sale_location, sale_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.UserID, item.Channel, item.ProductName,
		item.QuantityTotal, item.QuantityAvailable,
		item.PurchasePrice, item.Point, item.PurchaseDate, item.PurchaseLocation, item.Status,
		item.SalePrice, item.SaleLocation, item.SaleDate, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get item")
}

// GetForUpdate obtiene un ítem bloqueando su fila (SELECT ... FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get item for update")
}

// Update actualiza un ítem existente completo.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET channel = $2, product_name = $3, quantity_total = $4, quantity_available = $5,
			purchase_price = $6, point = $7, purchase_date = $8, purchase_location = $9, status = $10,
			sale_price = $11, sale_location = $12, sale_date = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Channel, item.ProductName, item.QuantityTotal, item.QuantityAvailable,
		item.PurchasePrice, item.Point, item.PurchaseDate, item.PurchaseLocation, item.Status,
		item.SalePrice, item.SaleLocation, item.SaleDate, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// ListByUser lista los ítems del usuario, más recientes primero, con filtros
// opcionales de estado y canal y paginación.
func (r *ItemRepo) ListByUser(ctx context.Context, userID string, f repository.ItemFilter) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = $1`
	args := []any{userID}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Channel != "" {
		args = append(args, f.Channel)
		query += fmt.Sprintf(" AND channel = $%d", len(args))
	}
	query += " ORDER BY purchase_date DESC, created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListSellable lista los ítems vendibles del usuario (pending o inventory con
// cantidad disponible > 0), opcionalmente filtrados por canal.
func (r *ItemRepo) ListSellable(ctx context.Context, userID, channel string) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE user_id = $1
		  AND status IN ('pending', 'inventory')
		  AND COALESCE(quantity_available, quantity_total, 1) > 0`
	args := []any{userID}
	if channel != "" {
		args = append(args, channel)
		query += fmt.Sprintf(" AND channel = $%d", len(args))
	}
	query += " ORDER BY purchase_date DESC, created_at DESC"
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sellable items: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Delete elimina un ítem por ID.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.UserID, &it.Channel, &it.ProductName,
		&it.QuantityTotal, &it.QuantityAvailable,
		&it.PurchasePrice, &it.Point, &it.PurchaseDate, &it.PurchaseLocation, &it.Status,
		&it.SalePrice, &it.SaleLocation, &it.SaleDate, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}

func (r *ItemRepo) scanAll(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.Channel, &it.ProductName,
			&it.QuantityTotal, &it.QuantityAvailable,
			&it.PurchasePrice, &it.Point, &it.PurchaseDate, &it.PurchaseLocation, &it.Status,
			&it.SalePrice, &it.SaleLocation, &it.SaleDate, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
