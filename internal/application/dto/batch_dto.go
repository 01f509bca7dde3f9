package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchSelection un ítem y la cantidad comprometida al lote.
type BatchSelection struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CreateBatchRequest creación de un lote de venta.
type CreateBatchRequest struct {
	Method       string           `json:"method"` // shipping | in_store
	Buyer        string           `json:"buyer"`
	Campaign     string           `json:"campaign"`
	ShippingCost decimal.Decimal  `json:"shipping_cost"`
	Selections   []BatchSelection `json:"selections"`
}

// ConfirmBatchRequest precios finales por línea (id de línea -> precio).
type ConfirmBatchRequest struct {
	FinalPrices map[string]decimal.Decimal `json:"final_prices"`
}

// BatchResponse representación HTTP de un lote.
type BatchResponse struct {
	ID           string          `json:"id"`
	Method       string          `json:"method"`
	Buyer        string          `json:"buyer"`
	Campaign     string          `json:"campaign,omitempty"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Status       string          `json:"status"`
	ItemCount    int             `json:"item_count"`
	ConfirmedAt  *time.Time      `json:"confirmed_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BatchListResponse lotes del usuario, más reciente primero.
type BatchListResponse struct {
	Batches []BatchResponse `json:"batches"`
}

// ConfirmableItemResponse línea pendiente de confirmar, con el precio final
// sugerido: max(0, compra - puntos) * cantidad.
type ConfirmableItemResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	Point          decimal.Decimal `json:"point"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
}

// ConfirmableListResponse líneas sin confirmar de un lote.
type ConfirmableListResponse struct {
	BatchID string                    `json:"batch_id"`
	Items   []ConfirmableItemResponse `json:"items"`
}
