package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest alta de un ítem comprado. Las fechas viajan como
// "YYYY-MM-DD" (igual que el formulario original).
type CreateItemRequest struct {
	Channel          string          `json:"channel"`
	ProductName      string          `json:"product_name"`
	Quantity         int             `json:"quantity"` // 0 => 1
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	Point            decimal.Decimal `json:"point"`
	PurchaseDate     string          `json:"purchase_date"`
	PurchaseLocation string          `json:"purchase_location"`
	Status           string          `json:"status"` // pending (default) | inventory
}

// UpdateItemRequest edición parcial; nil = sin cambio.
type UpdateItemRequest struct {
	Channel          *string          `json:"channel"`
	ProductName      *string          `json:"product_name"`
	PurchasePrice    *decimal.Decimal `json:"purchase_price"`
	Point            *decimal.Decimal `json:"point"`
	PurchaseDate     *string          `json:"purchase_date"`
	PurchaseLocation *string          `json:"purchase_location"`
	Status           *string          `json:"status"`
	SalePrice        *decimal.Decimal `json:"sale_price"`
	SaleLocation     *string          `json:"sale_location"`
	SaleDate         *string          `json:"sale_date"`
}

// RegisterSaleRequest venta directa de un ítem individual.
type RegisterSaleRequest struct {
	SalePrice    decimal.Decimal `json:"sale_price"`
	SaleLocation string          `json:"sale_location"`
	SaleDate     string          `json:"sale_date"` // vacío => hoy
}

// ItemResponse representación HTTP de un ítem.
type ItemResponse struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	Channel           string           `json:"channel,omitempty"`
	ProductName       string           `json:"product_name"`
	QuantityTotal     int              `json:"quantity_total"`
	QuantityAvailable int              `json:"quantity_available"`
	PurchasePrice     decimal.Decimal  `json:"purchase_price"`
	Point             decimal.Decimal  `json:"point"`
	PurchaseDate      string           `json:"purchase_date"`
	PurchaseLocation  string           `json:"purchase_location"`
	Status            string           `json:"status"`
	SalePrice         *decimal.Decimal `json:"sale_price,omitempty"`
	SaleLocation      *string          `json:"sale_location,omitempty"`
	SaleDate          *string          `json:"sale_date,omitempty"`
	Profit            decimal.Decimal  `json:"profit"`
	PointProfit       decimal.Decimal  `json:"point_profit"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ItemListResponse listado paginado de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
