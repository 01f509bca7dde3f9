// Package batch implementa el motor de lotes de venta: creación con
// snapshots, consulta de líneas confirmables y confirmación atómica que
// descuenta cantidades y transiciona estados de los ítems enlazados.
package batch

import (
	"context"

	"github.com/tu-usuario/sedori-pro/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción: o se aplican todas las
// escrituras de ítems, líneas y lote, o ninguna. Los repos que recibe fn
// están atados a esa transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		batchRepo repository.BatchRepository,
	) error) error
}
