package batch_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/sedori-pro/internal/application/batch"
	"github.com/tu-usuario/sedori-pro/internal/application/dto"
	"github.com/tu-usuario/sedori-pro/internal/domain"
	"github.com/tu-usuario/sedori-pro/internal/domain/entity"
	"github.com/tu-usuario/sedori-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// Los repos guardan copias: una mutación solo "persiste" pasando por Update,
// igual que contra la base real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.Item)}
}

func (r *fakeItemRepo) put(it *entity.Item) {
	cp := *it
	r.items[it.ID] = &cp
}

func (r *fakeItemRepo) Create(_ context.Context, it *entity.Item) error {
	r.put(it)
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeItemRepo) Update(_ context.Context, it *entity.Item) error {
	r.put(it)
	return nil
}

func (r *fakeItemRepo) ListByUser(_ context.Context, userID string, _ repository.ItemFilter) ([]*entity.Item, error) {
	var list []*entity.Item
	for _, it := range r.items {
		if it.UserID == userID {
			cp := *it
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeItemRepo) ListSellable(_ context.Context, userID, _ string) ([]*entity.Item, error) {
	var list []*entity.Item
	for _, it := range r.items {
		if it.UserID == userID && it.Sellable() {
			cp := *it
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeBatchRepo struct {
	batches map[string]*entity.SaleBatch
	lines   []*entity.SaleBatchItem
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: make(map[string]*entity.SaleBatch)}
}

func (r *fakeBatchRepo) CreateBatch(_ context.Context, b *entity.SaleBatch) error {
	cp := *b
	r.batches[b.ID] = &cp
	return nil
}

func (r *fakeBatchRepo) GetBatch(_ context.Context, id string) (*entity.SaleBatch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBatchRepo) GetBatchForUpdate(ctx context.Context, id string) (*entity.SaleBatch, error) {
	return r.GetBatch(ctx, id)
}

func (r *fakeBatchRepo) UpdateBatch(_ context.Context, b *entity.SaleBatch) error {
	cp := *b
	r.batches[b.ID] = &cp
	return nil
}

func (r *fakeBatchRepo) ListByUser(_ context.Context, userID string) ([]*entity.SaleBatch, error) {
	var list []*entity.SaleBatch
	for _, b := range r.batches {
		if b.UserID == userID {
			cp := *b
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeBatchRepo) CreateBatchItem(_ context.Context, li *entity.SaleBatchItem) error {
	cp := *li
	r.lines = append(r.lines, &cp)
	return nil
}

func (r *fakeBatchRepo) ListBatchItems(_ context.Context, batchID string) ([]*entity.SaleBatchItem, error) {
	var list []*entity.SaleBatchItem
	for _, li := range r.lines {
		if li.BatchID == batchID {
			cp := *li
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeBatchRepo) UpdateBatchItem(_ context.Context, li *entity.SaleBatchItem) error {
	for i, old := range r.lines {
		if old.ID == li.ID {
			cp := *li
			r.lines[i] = &cp
			return nil
		}
	}
	return nil
}

// fakeTxRunner ejecuta el callback directamente contra los fakes, sin
// atomicidad real (suficiente para probar la lógica del motor).
type fakeTxRunner struct {
	itemRepo  *fakeItemRepo
	batchRepo *fakeBatchRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	batchRepo repository.BatchRepository,
) error) error {
	return fn(r.itemRepo, r.batchRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "user-1"

func buildEngine() (*batch.UseCase, *fakeItemRepo, *fakeBatchRepo) {
	itemRepo := newFakeItemRepo()
	batchRepo := newFakeBatchRepo()
	uc := batch.NewUseCase(&fakeTxRunner{itemRepo: itemRepo, batchRepo: batchRepo}, itemRepo, batchRepo)
	return uc, itemRepo, batchRepo
}

func seedItem(r *fakeItemRepo, id string, qty int, purchase, point float64) {
	r.put(&entity.Item{
		ID:                id,
		UserID:            testUserID,
		Channel:           entity.ChannelKaitori,
		ProductName:       "Consola retro " + id,
		QuantityTotal:     qty,
		QuantityAvailable: qty,
		PurchasePrice:     decimal.NewFromFloat(purchase),
		Point:             decimal.NewFromFloat(point),
		PurchaseDate:      time.Now(),
		Status:            entity.StatusPending,
	})
}

func createBatch(t *testing.T, uc *batch.UseCase, selections ...dto.BatchSelection) *dto.BatchResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), testUserID, dto.CreateBatchRequest{
		Method:     entity.MethodShipping,
		Buyer:      "Tienda Nakano",
		Selections: selections,
	})
	require.NoError(t, err)
	return out
}

func confirmAll(t *testing.T, uc *batch.UseCase, batchID string, price float64) (*dto.BatchResponse, error) {
	t.Helper()
	conf, err := uc.LoadConfirmable(context.Background(), testUserID, batchID)
	require.NoError(t, err)
	prices := make(map[string]decimal.Decimal, len(conf.Items))
	for _, li := range conf.Items {
		prices[li.ID] = decimal.NewFromFloat(price)
	}
	return uc.Confirm(context.Background(), testUserID, batchID, dto.ConfirmBatchRequest{FinalPrices: prices})
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SnapshotSinTocarItems(t *testing.T) {
	uc, itemRepo, batchRepo := buildEngine()
	seedItem(itemRepo, "item-1", 5, 1000, 200)

	out := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 3})

	assert.Equal(t, entity.BatchInProgress, out.Status)
	assert.Equal(t, 1, out.ItemCount)

	// El ítem no reserva cantidad al crear el lote.
	it, _ := itemRepo.GetByID(context.Background(), "item-1")
	assert.Equal(t, 5, it.QuantityAvailable, "crear un lote no descuenta cantidades")
	assert.Equal(t, entity.StatusPending, it.Status)

	lines, _ := batchRepo.ListBatchItems(context.Background(), out.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, "item-1", lines[0].ItemID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, decimal.NewFromInt(1000).Equal(lines[0].PurchasePrice), "el precio de compra se snapshottea")
	assert.True(t, decimal.NewFromInt(200).Equal(lines[0].Point))
	assert.Equal(t, entity.BatchInProgress, lines[0].Status)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, itemRepo, _ := buildEngine()
	seedItem(itemRepo, "item-1", 2, 1000, 0)

	base := func() dto.CreateBatchRequest {
		return dto.CreateBatchRequest{
			Method:     entity.MethodInStore,
			Buyer:      "Comprador",
			Selections: []dto.BatchSelection{{ItemID: "item-1", Quantity: 1}},
		}
	}

	t.Run("comprador vacío", func(t *testing.T) {
		in := base()
		in.Buyer = "   "
		_, err := uc.Create(context.Background(), testUserID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("sin selecciones", func(t *testing.T) {
		in := base()
		in.Selections = nil
		_, err := uc.Create(context.Background(), testUserID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("método desconocido", func(t *testing.T) {
		in := base()
		in.Method = "paloma mensajera"
		_, err := uc.Create(context.Background(), testUserID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("costo de envío negativo", func(t *testing.T) {
		in := base()
		in.ShippingCost = decimal.NewFromInt(-1)
		_, err := uc.Create(context.Background(), testUserID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("cantidad cero", func(t *testing.T) {
		in := base()
		in.Selections[0].Quantity = 0
		_, err := uc.Create(context.Background(), testUserID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("ítem duplicado", func(t *testing.T) {
		in := base()
		in.Selections = append(in.Selections, dto.BatchSelection{ItemID: "item-1", Quantity: 1})
		_, err := uc.Create(context.Background(), testUserID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("cantidad mayor que disponible", func(t *testing.T) {
		in := base()
		in.Selections[0].Quantity = 3
		_, err := uc.Create(context.Background(), testUserID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("ítem inexistente", func(t *testing.T) {
		in := base()
		in.Selections[0].ItemID = "no-existe"
		_, err := uc.Create(context.Background(), testUserID, in)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("ítem de otro usuario", func(t *testing.T) {
		in := base()
		_, err := uc.Create(context.Background(), "otro-usuario", in)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestCreate_ItemVendidoNoEntra(t *testing.T) {
	uc, itemRepo, _ := buildEngine()
	seedItem(itemRepo, "item-1", 1, 1000, 0)
	it, _ := itemRepo.GetByID(context.Background(), "item-1")
	it.Status = entity.StatusSold
	it.QuantityAvailable = 0
	require.NoError(t, itemRepo.Update(context.Background(), it))

	_, err := uc.Create(context.Background(), testUserID, dto.CreateBatchRequest{
		Method:     entity.MethodShipping,
		Buyer:      "Comprador",
		Selections: []dto.BatchSelection{{ItemID: "item-1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// LoadConfirmable
// ──────────────────────────────────────────────────────────────────────────────

func TestLoadConfirmable_PrecioSugerido(t *testing.T) {
	uc, itemRepo, _ := buildEngine()
	seedItem(itemRepo, "item-1", 5, 1000, 200)

	out := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 3})
	conf, err := uc.LoadConfirmable(context.Background(), testUserID, out.ID)
	require.NoError(t, err)
	require.Len(t, conf.Items, 1)

	// max(0, 1000-200) * 3 = 2400
	assert.True(t, decimal.NewFromInt(2400).Equal(conf.Items[0].SuggestedPrice))
}

func TestLoadConfirmable_PuntosMayoresQueCompra_SugiereCero(t *testing.T) {
	uc, itemRepo, _ := buildEngine()
	seedItem(itemRepo, "item-1", 2, 500, 800)

	out := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 2})
	conf, err := uc.LoadConfirmable(context.Background(), testUserID, out.ID)
	require.NoError(t, err)
	require.Len(t, conf.Items, 1)

	assert.True(t, conf.Items[0].SuggestedPrice.IsZero(),
		"el precio sugerido se recorta a cero aunque el costo neto sea negativo")
}

func TestLoadConfirmable_LoteAjeno(t *testing.T) {
	uc, itemRepo, _ := buildEngine()
	seedItem(itemRepo, "item-1", 1, 100, 0)
	out := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 1})

	_, err := uc.LoadConfirmable(context.Background(), "otro-usuario", out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirm
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_VentaParcial_PasaAInventory(t *testing.T) {
	uc, itemRepo, batchRepo := buildEngine()
	seedItem(itemRepo, "item-1", 5, 1000, 200)

	out := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 3})
	confirmed, err := confirmAll(t, uc, out.ID, 2400)
	require.NoError(t, err)

	assert.Equal(t, entity.BatchConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmedAt)

	it, _ := itemRepo.GetByID(context.Background(), "item-1")
	assert.Equal(t, 2, it.QuantityAvailable, "5 - 3 = 2 disponibles")
	assert.Equal(t, entity.StatusInventory, it.Status,
		"un pending parcialmente vendido pasa a inventario activo")
	assert.Nil(t, it.SalePrice, "con cantidad restante no se estampan datos de venta")

	lines, _ := batchRepo.ListBatchItems(context.Background(), out.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, entity.BatchConfirmed, lines[0].Status)
	require.NotNil(t, lines[0].FinalPrice)
	assert.True(t, decimal.NewFromInt(2400).Equal(*lines[0].FinalPrice))
}

func TestConfirm_AgotaCantidad_PasaASoldConDatosDeVenta(t *testing.T) {
	uc, itemRepo, _ := buildEngine()
	seedItem(itemRepo, "item-1", 5, 1000, 200)

	// Primer lote: 3 de 5.
	first := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 3})
	_, err := confirmAll(t, uc, first.ID, 2400)
	require.NoError(t, err)

	// Segundo lote: las 2 restantes.
	second := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 2})
	_, err = confirmAll(t, uc, second.ID, 1800)
	require.NoError(t, err)

	it, _ := itemRepo.GetByID(context.Background(), "item-1")
	assert.Equal(t, 0, it.QuantityAvailable)
	assert.Equal(t, entity.StatusSold, it.Status)

	// El precio de venta estampado es el de la ÚLTIMA línea que agotó la
	// cantidad, no un acumulado.
	require.NotNil(t, it.SalePrice)
	assert.True(t, decimal.NewFromInt(1800).Equal(*it.SalePrice))
	require.NotNil(t, it.SaleLocation)
	assert.Equal(t, "Tienda Nakano", *it.SaleLocation)
	require.NotNil(t, it.SaleDate)

	now := time.Now()
	assert.Equal(t, now.Year(), it.SaleDate.Year())
	assert.Equal(t, now.Month(), it.SaleDate.Month())
	assert.Equal(t, now.Day(), it.SaleDate.Day())
}

func TestConfirm_Reconfirmar_FallaSinDobleDescuento(t *testing.T) {
	uc, itemRepo, batchRepo := buildEngine()
	seedItem(itemRepo, "item-1", 5, 1000, 0)

	out := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 2})
	_, err := confirmAll(t, uc, out.ID, 2000)
	require.NoError(t, err)

	lines, _ := batchRepo.ListBatchItems(context.Background(), out.ID)
	_, err = uc.Confirm(context.Background(), testUserID, out.ID, dto.ConfirmBatchRequest{
		FinalPrices: map[string]decimal.Decimal{lines[0].ID: decimal.NewFromInt(9999)},
	})
	assert.ErrorIs(t, err, domain.ErrBatchConfirmed)

	it, _ := itemRepo.GetByID(context.Background(), "item-1")
	assert.Equal(t, 3, it.QuantityAvailable,
		"re-confirmar no debe descontar cantidades otra vez")
}

func TestConfirm_FaltaPrecioDeUnaLinea(t *testing.T) {
	uc, itemRepo, _ := buildEngine()
	seedItem(itemRepo, "item-1", 1, 100, 0)
	seedItem(itemRepo, "item-2", 1, 100, 0)

	out := createBatch(t, uc,
		dto.BatchSelection{ItemID: "item-1", Quantity: 1},
		dto.BatchSelection{ItemID: "item-2", Quantity: 1},
	)
	conf, err := uc.LoadConfirmable(context.Background(), testUserID, out.ID)
	require.NoError(t, err)

	// Solo un precio de los dos requeridos.
	_, err = uc.Confirm(context.Background(), testUserID, out.ID, dto.ConfirmBatchRequest{
		FinalPrices: map[string]decimal.Decimal{conf.Items[0].ID: decimal.NewFromInt(500)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_PrecioNegativo(t *testing.T) {
	uc, itemRepo, _ := buildEngine()
	seedItem(itemRepo, "item-1", 1, 100, 0)

	out := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 1})
	conf, err := uc.LoadConfirmable(context.Background(), testUserID, out.ID)
	require.NoError(t, err)

	_, err = uc.Confirm(context.Background(), testUserID, out.ID, dto.ConfirmBatchRequest{
		FinalPrices: map[string]decimal.Decimal{conf.Items[0].ID: decimal.NewFromInt(-1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_PrecioCeroEsValido(t *testing.T) {
	uc, itemRepo, _ := buildEngine()
	seedItem(itemRepo, "item-1", 1, 100, 0)

	out := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 1})
	_, err := confirmAll(t, uc, out.ID, 0)
	require.NoError(t, err, "precio final 0 es una venta regalada válida")

	it, _ := itemRepo.GetByID(context.Background(), "item-1")
	assert.Equal(t, entity.StatusSold, it.Status)
	require.NotNil(t, it.SalePrice)
	assert.True(t, it.SalePrice.IsZero())
}

func TestConfirm_LoteInexistente(t *testing.T) {
	uc, _, _ := buildEngine()
	_, err := uc.Confirm(context.Background(), testUserID, "no-existe", dto.ConfirmBatchRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_CantidadNuncaNegativa(t *testing.T) {
	uc, itemRepo, _ := buildEngine()
	seedItem(itemRepo, "item-1", 3, 100, 0)

	// Dos lotes sobre el mismo ítem ANTES de confirmar ninguno: la suma
	// comprometida (2+2) supera la disponible (3).
	first := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 2})
	second := createBatch(t, uc, dto.BatchSelection{ItemID: "item-1", Quantity: 2})

	_, err := confirmAll(t, uc, first.ID, 200)
	require.NoError(t, err)
	_, err = confirmAll(t, uc, second.ID, 200)
	require.NoError(t, err)

	it, _ := itemRepo.GetByID(context.Background(), "item-1")
	assert.Equal(t, 0, it.QuantityAvailable,
		"la cantidad disponible tiene suelo en 0, nunca queda negativa")
	assert.Equal(t, entity.StatusSold, it.Status)
}
