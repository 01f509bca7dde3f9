package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Método de entrega de un lote de venta.
const (
	MethodShipping = "shipping" // envío postal al comprador
	MethodInStore  = "in_store" // entrega en tienda
)

// Estados del lote: in_progress → confirmed (terminal).
const (
	BatchInProgress = "in_progress"
	BatchConfirmed  = "confirmed"
)

// SaleBatch agrupa varios ítems en una sola transacción de venta externa
// (ej. consignación a un comprador mayorista). Inmutable una vez confirmado,
// salvo timestamps.
type SaleBatch struct {
	ID           string
	UserID       string
	Method       string // shipping | in_store
	Buyer        string // comprador, obligatorio
	Campaign     string // etiqueta de campaña, opcional
	ShippingCost decimal.Decimal
	Status       string // in_progress | confirmed
	ItemCount    int
	ConfirmedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidMethod indica si m es un método de entrega conocido.
func ValidMethod(m string) bool {
	return m == MethodShipping || m == MethodInStore
}

// SaleBatchItem es una línea del lote: un ítem con la cantidad comprometida y
// los snapshots de nombre, precio de compra y puntos tomados al crear el lote
// (no se re-sincronizan si el ítem cambia después).
type SaleBatchItem struct {
	ID            string
	BatchID       string
	UserID        string
	ItemID        string
	ProductName   string // snapshot
	Quantity      int
	PurchasePrice decimal.Decimal // snapshot
	Point         decimal.Decimal // snapshot
	Status        string          // in_progress | confirmed (por línea)
	FinalPrice    *decimal.Decimal
	ConfirmedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SuggestedPrice es el precio final sugerido al confirmar:
// max(0, precio de compra - puntos) * cantidad.
func (l *SaleBatchItem) SuggestedPrice() decimal.Decimal {
	unit := l.PurchasePrice.Sub(l.Point)
	if unit.IsNegative() {
		unit = decimal.Zero
	}
	return unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
