package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/memory"
)

func product(id, sku string) *entity.Product {
	return &entity.Product{ID: id, SKU: sku, Title: "x", LastModified: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestCreate_SKUSinDistinguirMayusculas(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(memory.NewStore())

	require.NoError(t, repo.Create(ctx, product("1", "STRASSE-1")))
	assert.ErrorIs(t, repo.Create(ctx, product("2", "strasse-1")), domain.ErrDuplicate)

	// Mismo criterio que lower() en Postgres: ß no se expande a ss.
	require.NoError(t, repo.Create(ctx, product("3", "straße-1")))
	assert.ErrorIs(t, repo.Create(ctx, product("4", "STRAßE-1")), domain.ErrDuplicate)

	got, err := repo.GetBySKU(ctx, "Straße-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "3", got.ID)
}

func TestList_OffsetFueraDeRango(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository(memory.NewStore())
	require.NoError(t, repo.Create(ctx, product("1", "A")))
	require.NoError(t, repo.Create(ctx, product("2", "B")))

	items, total, err := repo.List(ctx, repository.ProductFilter{}, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Empty(t, items)

	items, total, err = repo.List(ctx, repository.ProductFilter{}, 5, -100)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)
}
