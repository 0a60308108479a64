package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/usecase"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/memory"
)

func newProductUseCase(t *testing.T) *usecase.ProductUseCase {
	t.Helper()
	return usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()), 0)
}

func TestProductCreate(t *testing.T) {
	ctx := context.Background()
	uc := newProductUseCase(t)

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		SKU: " TAL-01 ", Title: "Taladro", Category: "Herramientas", Warehouse: "Norte",
		Price: decimal.RequireFromString("120.50"), Quantity: 4, MinStock: 5, MaxStock: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "TAL-01", created.SKU)
	assert.Equal(t, "LOW_STOCK", created.Status)
	assert.Equal(t, "LOW_STOCK", created.AlertStatus)
	assert.Empty(t, created.InMovements)

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "tal-01", Title: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.GetBySKU(ctx, "tal-01")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc := newProductUseCase(t)
	cases := []struct {
		name  string
		in    dto.CreateProductRequest
		field string
	}{
		{"sin sku", dto.CreateProductRequest{Title: "x"}, "sku"},
		{"sin título", dto.CreateProductRequest{SKU: "A", Title: "  "}, "title"},
		{"precio negativo", dto.CreateProductRequest{SKU: "A", Title: "x", Price: decimal.NewFromInt(-1)}, "price"},
		{"cantidad negativa", dto.CreateProductRequest{SKU: "A", Title: "x", Quantity: -1}, "quantity"},
		{"mínimo negativo", dto.CreateProductRequest{SKU: "A", Title: "x", MinStock: -1}, "min_stock"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestProductGetBySKU_NoExiste(t *testing.T) {
	_, err := newProductUseCase(t).GetBySKU(context.Background(), "NADA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_FiltrosYPaginacion(t *testing.T) {
	ctx := context.Background()
	uc := newProductUseCase(t)
	for i, qty := range []int{0, 3, 12, 15, 40, 8} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{
			SKU: fmt.Sprintf("BOD-%02d", i), Title: "Item", Category: "Pinturas", Quantity: qty,
		})
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "OTRO-1", Title: "Item", Category: "Eléctricos", Quantity: 1})
	require.NoError(t, err)

	page, err := uc.List(ctx, dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Len(t, page.Items, dto.DefaultLimit)
	assert.Equal(t, 2, page.TotalPages)
	assert.Empty(t, page.Items[0].InMovements, "el listado no incluye el historial")

	low, err := uc.List(ctx, dto.ProductListRequest{Status: "LOW_STOCK", Category: "pinturas"})
	require.NoError(t, err)
	assert.Equal(t, 2, low.Total)

	bySKU, err := uc.List(ctx, dto.ProductListRequest{Search: "bod-0"})
	require.NoError(t, err)
	assert.Equal(t, 6, bySKU.Total)

	_, err = uc.List(ctx, dto.ProductListRequest{Status: "OVERSTOCK"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductList_PaginaFueraDeRango(t *testing.T) {
	ctx := context.Background()
	uc := newProductUseCase(t)
	_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Title: "a"})
	require.NoError(t, err)

	var page *dto.ProductListResponse
	require.NotPanics(t, func() {
		page, err = uc.List(ctx, dto.ProductListRequest{PageRequest: dto.PageRequest{Page: 1 << 62, Limit: 100}})
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, dto.MaxPage, page.CurrentPage)
}

func TestProductFilterOptionsYAlertas(t *testing.T) {
	ctx := context.Background()
	uc := newProductUseCase(t)
	_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Title: "a", Category: "Pinturas", Warehouse: "Sur", Quantity: 30, MaxStock: 10})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "B", Title: "b", Category: "Eléctricos", Warehouse: "Sur", Quantity: 30})
	require.NoError(t, err)

	opts, err := uc.FilterOptions(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Pinturas", "Eléctricos"}, opts.Categories)
	assert.Equal(t, []string{"Sur"}, opts.Warehouses)
	assert.NotEmpty(t, opts.Statuses)

	over, err := uc.ListAlerts(ctx, "OVERSTOCK")
	require.NoError(t, err)
	require.Len(t, over, 1, "max_stock 0 no genera sobrestock")
	assert.Equal(t, "A", over[0].SKU)

	_, err = uc.ListAlerts(ctx, "RARO")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
