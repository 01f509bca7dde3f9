package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/sedori-pro/internal/application/dto"
	"github.com/tu-usuario/sedori-pro/internal/domain"
	"github.com/tu-usuario/sedori-pro/internal/domain/entity"
	"github.com/tu-usuario/sedori-pro/internal/domain/profit"
	"github.com/tu-usuario/sedori-pro/internal/domain/repository"
)

// dateLayout formato de fecha en requests/responses ("YYYY-MM-DD").
const dateLayout = "2006-01-02"

// ItemUseCase casos de uso CRUD para ítems: alta, edición, recepción, venta
// directa y borrado. Las transiciones de estado por lote viven en el motor de
// lotes, no aquí.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create da de alta un ítem en estado pending (o inventory si ya se recibió).
// Cantidad por defecto 1; disponible arranca igual al total.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidChannel(in.Channel) {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.StatusPending
	}
	if status != entity.StatusPending && status != entity.StatusInventory {
		return nil, domain.ErrInvalidInput
	}
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}
	purchaseDate, err := parseDate(in.PurchaseDate, time.Now())
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &entity.Item{
		ID:                uuid.New().String(),
		UserID:            userID,
		Channel:           in.Channel,
		ProductName:       name,
		QuantityTotal:     qty,
		QuantityAvailable: qty,
		PurchasePrice:     in.PurchasePrice,
		Point:             in.Point,
		PurchaseDate:      purchaseDate,
		PurchaseLocation:  strings.TrimSpace(in.PurchaseLocation),
		Status:            status,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un ítem del usuario.
func (uc *ItemUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ItemResponse, error) {
	item, err := uc.ownedItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update edición parcial de un ítem. Un ítem vendido solo admite corrección de
// los datos de venta; no hay transición de salida desde sold.
func (uc *ItemUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.ownedItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if item.Status == entity.StatusSold {
		if in.Status != nil && *in.Status != entity.StatusSold {
			return nil, domain.ErrItemSold
		}
		if in.Channel != nil || in.ProductName != nil || in.PurchasePrice != nil ||
			in.Point != nil || in.PurchaseDate != nil || in.PurchaseLocation != nil {
			return nil, domain.ErrItemSold
		}
		if err := applySaleCorrection(item, in); err != nil {
			return nil, err
		}
	} else {
		if in.SalePrice != nil || in.SaleLocation != nil || in.SaleDate != nil {
			// Vender se hace vía RegisterSale o confirmación de lote.
			return nil, domain.ErrInvalidInput
		}
		if err := applyEdit(item, in); err != nil {
			return nil, err
		}
	}

	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// MarkReceived transición manual pending → inventory, sin efectos sobre otras
// entidades.
func (uc *ItemUseCase) MarkReceived(ctx context.Context, userID, id string) (*dto.ItemResponse, error) {
	item, err := uc.ownedItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if item.Status != entity.StatusPending {
		return nil, domain.ErrInvalidInput
	}
	item.Status = entity.StatusInventory
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// RegisterSale venta directa de un ítem individual: fija precio, destino y
// fecha de venta, agota la cantidad disponible y pasa a sold.
func (uc *ItemUseCase) RegisterSale(ctx context.Context, userID, id string, in dto.RegisterSaleRequest) (*dto.ItemResponse, error) {
	item, err := uc.ownedItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if item.Status == entity.StatusSold || item.Status == entity.StatusCanceled {
		return nil, domain.ErrItemSold
	}
	if in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	saleDate, err := parseDate(in.SaleDate, time.Now())
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	price := in.SalePrice
	location := strings.TrimSpace(in.SaleLocation)
	item.Status = entity.StatusSold
	item.QuantityAvailable = 0
	item.SalePrice = &price
	item.SaleLocation = &location
	item.SaleDate = &saleDate
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un ítem del usuario. Siempre permitido, sin cascada: las
// líneas de lote históricas conservan sus snapshots.
func (uc *ItemUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.ownedItem(ctx, userID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List lista los ítems del usuario con filtros y paginación.
func (uc *ItemUseCase) List(ctx context.Context, userID string, f repository.ItemFilter) (*dto.ItemListResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// Sellable lista los candidatos a entrar en un lote nuevo: pending o
// inventory con cantidad disponible.
func (uc *ItemUseCase) Sellable(ctx context.Context, userID, channel string) ([]dto.ItemResponse, error) {
	list, err := uc.repo.ListSellable(ctx, userID, channel)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return items, nil
}

func (uc *ItemUseCase) ownedItem(ctx context.Context, userID, id string) (*entity.Item, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func applyEdit(item *entity.Item, in dto.UpdateItemRequest) error {
	if in.Channel != nil {
		if !entity.ValidChannel(*in.Channel) {
			return domain.ErrInvalidInput
		}
		item.Channel = *in.Channel
	}
	if in.ProductName != nil {
		name := strings.TrimSpace(*in.ProductName)
		if name == "" {
			return domain.ErrInvalidInput
		}
		item.ProductName = name
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return domain.ErrInvalidInput
		}
		item.PurchasePrice = *in.PurchasePrice
	}
	if in.Point != nil {
		item.Point = *in.Point
	}
	if in.PurchaseDate != nil {
		d, err := time.ParseInLocation(dateLayout, *in.PurchaseDate, time.Local)
		if err != nil {
			return domain.ErrInvalidInput
		}
		item.PurchaseDate = d
	}
	if in.PurchaseLocation != nil {
		item.PurchaseLocation = strings.TrimSpace(*in.PurchaseLocation)
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.StatusPending, entity.StatusInventory:
			item.Status = *in.Status
		default:
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// applySaleCorrection permite corregir los datos de venta de un ítem vendido
// sin revertir el estado.
func applySaleCorrection(item *entity.Item, in dto.UpdateItemRequest) error {
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return domain.ErrInvalidInput
		}
		price := *in.SalePrice
		item.SalePrice = &price
	}
	if in.SaleLocation != nil {
		loc := strings.TrimSpace(*in.SaleLocation)
		item.SaleLocation = &loc
	}
	if in.SaleDate != nil {
		d, err := time.ParseInLocation(dateLayout, *in.SaleDate, time.Local)
		if err != nil {
			return domain.ErrInvalidInput
		}
		item.SaleDate = &d
	}
	return nil
}

func parseDate(s string, def time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Date(def.Year(), def.Month(), def.Day(), 0, 0, 0, 0, time.Local), nil
	}
	return time.ParseInLocation(dateLayout, s, time.Local)
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	resp := &dto.ItemResponse{
		ID:                it.ID,
		UserID:            it.UserID,
		Channel:           it.Channel,
		ProductName:       it.ProductName,
		QuantityTotal:     it.QuantityTotal,
		QuantityAvailable: it.QuantityAvailable,
		PurchasePrice:     it.PurchasePrice,
		Point:             it.Point,
		PurchaseDate:      it.PurchaseDate.Format(dateLayout),
		PurchaseLocation:  it.PurchaseLocation,
		Status:            it.Status,
		SalePrice:         it.SalePrice,
		SaleLocation:      it.SaleLocation,
		Profit:            profit.Profit(it),
		PointProfit:       profit.PointProfit(it),
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
	if it.SaleDate != nil {
		s := it.SaleDate.Format(dateLayout)
		resp.SaleDate = &s
	}
	return resp
}
