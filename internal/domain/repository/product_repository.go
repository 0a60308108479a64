package repository

import (
	"context"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/inventory"
)

// ProductFilter criterios del listado. Campos vacíos no filtran.
// Search es subcadena del SKU; Category y Warehouse coincidencia exacta; todo case-insensitive.
type ProductFilter struct {
	Search    string
	Category  string
	Warehouse string
	QtyRange  *inventory.QtyRange
}

// ProductRepository define el puerto de persistencia de lectura y alta del catálogo (DIP).
// Las búsquedas por SKU no distinguen mayúsculas; devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// List ordena por LastModified descendente y devuelve también el total sin paginar.
	// Los productos del listado no cargan el log de movimientos.
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	// ListByAlert usa la partición por umbrales del producto (inventory.AlertStatus).
	ListByAlert(ctx context.Context, status inventory.Status) ([]*entity.Product, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctWarehouses(ctx context.Context) ([]string, error)
}
