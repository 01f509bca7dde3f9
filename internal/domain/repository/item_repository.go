package repository

import (
	"context"

	"github.com/tu-usuario/sedori-pro/internal/domain/entity"
)

// ItemFilter filtros opcionales para listar ítems de un usuario.
type ItemFilter struct {
	Status  string // pending | inventory | sold | canceled, vacío = todos
	Channel string // ebay | kaitori | other, vacío = todos
	Limit   int
	Offset  int
}

// ItemRepository define el puerto de persistencia para Item (DIP).
// Los Get devuelven (nil, nil) cuando el ítem no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate lee el ítem bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	ListByUser(ctx context.Context, userID string, f ItemFilter) ([]*entity.Item, error)
	// ListSellable lista los candidatos a lote: estado pending o inventory
	// con cantidad disponible > 0, opcionalmente filtrados por canal.
	ListSellable(ctx context.Context, userID, channel string) ([]*entity.Item, error)
	Delete(ctx context.Context, id string) error
}
