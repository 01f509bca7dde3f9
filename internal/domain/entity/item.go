package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canal de compra del ítem.
const (
	ChannelEbay    = "ebay"
	ChannelKaitori = "kaitori"
	ChannelOther   = "other"
)

// Estados del ciclo de vida de un ítem:
// pending (comprado, en tránsito) → inventory (recibido) → sold (terminal).
// canceled aparece solo en datos importados; es terminal y queda fuera de las
// vistas de inventario activo.
const (
	StatusPending   = "pending"
	StatusInventory = "inventory"
	StatusSold      = "sold"
	StatusCanceled  = "canceled"
)

// Item representa una unidad o lote comprado para reventa.
// QuantityAvailable se mantiene en [0, QuantityTotal]; cuando llega a 0 el
// estado pasa a sold. Los campos de venta están presentes si y solo si el
// estado es sold.
type Item struct {
	ID                string
	UserID            string
	Channel           string // ebay | kaitori | other | "" (sin asignar)
	ProductName       string
	QuantityTotal     int
	QuantityAvailable int
	PurchasePrice     decimal.Decimal
	Point             decimal.Decimal // puntos/descuento que reduce el costo real
	PurchaseDate      time.Time
	PurchaseLocation  string
	Status            string
	SalePrice         *decimal.Decimal
	SaleLocation      *string
	SaleDate          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidStatus indica si s es un estado conocido (incluye canceled de imports).
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInventory, StatusSold, StatusCanceled:
		return true
	}
	return false
}

// ValidChannel indica si c es un canal conocido o vacío.
func ValidChannel(c string) bool {
	switch c {
	case "", ChannelEbay, ChannelKaitori, ChannelOther:
		return true
	}
	return false
}

// Sellable indica si el ítem puede entrar en un lote de venta:
// estado pending o inventory y cantidad disponible > 0.
func (i *Item) Sellable() bool {
	if i.Status != StatusPending && i.Status != StatusInventory {
		return false
	}
	return i.QuantityAvailable > 0
}
