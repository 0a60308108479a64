package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

// ProductUseCase alta, consulta y listado del catálogo. Cantidad y movimientos se modifican
// solo a través de inventory.LedgerUseCase.
type ProductUseCase struct {
	repo            repository.ProductRepository
	defaultPageSize int
	now             func() time.Time
}

// NewProductUseCase construye el caso de uso; defaultPageSize <= 0 usa dto.DefaultLimit.
func NewProductUseCase(repo repository.ProductRepository, defaultPageSize int) *ProductUseCase {
	return &ProductUseCase{repo: repo, defaultPageSize: defaultPageSize, now: time.Now}
}

// Create crea un producto sin movimientos. La cantidad inicial es la base del libro.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Title = strings.TrimSpace(in.Title)
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Title:        in.Title,
		Category:     strings.TrimSpace(in.Category),
		Warehouse:    strings.TrimSpace(in.Warehouse),
		Image:        in.Image,
		Price:        in.Price,
		Quantity:     in.Quantity,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		LastModified: now,
		CreatedAt:    now,
	}
	// El índice único del repositorio detecta el SKU duplicado.
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product, true)
	return &out, nil
}

func validateCreate(in dto.CreateProductRequest) error {
	switch {
	case in.SKU == "":
		return domain.NewValidationError("sku", "es requerido")
	case in.Title == "":
		return domain.NewValidationError("title", "es requerido")
	case in.Price.LessThan(decimal.Zero):
		return domain.NewValidationError("price", "no puede ser negativo")
	case in.Quantity < 0:
		return domain.NewValidationError("quantity", "no puede ser negativa")
	case in.MinStock < 0:
		return domain.NewValidationError("min_stock", "no puede ser negativo")
	case in.MaxStock < 0:
		return domain.NewValidationError("max_stock", "no puede ser negativo")
	}
	return nil
}

// GetBySKU obtiene el producto con su historial (búsqueda sin distinguir mayúsculas).
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySKU(ctx, strings.TrimSpace(sku))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewProductResponse(product, true)
	return &out, nil
}

// List filtra por SKU, categoría, bodega y estado (partición del listado) y pagina.
func (uc *ProductUseCase) List(ctx context.Context, req dto.ProductListRequest) (*dto.ProductListResponse, error) {
	req.Normalize(uc.defaultPageSize)

	filter := repository.ProductFilter{
		Search:    req.Search,
		Category:  req.Category,
		Warehouse: req.Warehouse,
	}
	if s := strings.TrimSpace(req.Status); s != "" {
		status, ok := inventory.ParseStatus(s)
		if !ok {
			return nil, domain.NewValidationError("status", "valores: IN_STOCK, LOW_STOCK, OUT_OF_STOCK")
		}
		r, ok := inventory.ListingRange(status)
		if !ok {
			return nil, domain.NewValidationError("status", "el listado no admite "+string(status))
		}
		filter.QtyRange = &r
	}

	items, total, err := uc.repo.List(ctx, filter, req.Limit, req.Offset())
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items:       make([]dto.ProductResponse, 0, len(items)),
		Total:       total,
		TotalPages:  dto.TotalPages(total, req.Limit),
		CurrentPage: req.Page,
	}
	for _, p := range items {
		out.Items = append(out.Items, dto.NewProductResponse(p, false))
	}
	return out, nil
}

// FilterOptions valores distintos de categoría y bodega más los estados del listado.
func (uc *ProductUseCase) FilterOptions(ctx context.Context) (*dto.FilterOptionsResponse, error) {
	categories, err := uc.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.repo.DistinctWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	statuses := make([]string, 0, len(inventory.ListingStatuses))
	for _, s := range inventory.ListingStatuses {
		statuses = append(statuses, string(s))
	}
	return &dto.FilterOptionsResponse{Categories: categories, Warehouses: warehouses, Statuses: statuses}, nil
}

// ListAlerts productos en el estado indicado según sus propios umbrales.
func (uc *ProductUseCase) ListAlerts(ctx context.Context, status string) ([]dto.ProductResponse, error) {
	s, ok := inventory.ParseStatus(strings.TrimSpace(status))
	if !ok {
		return nil, domain.NewValidationError("status", "valores: LOW_STOCK, OUT_OF_STOCK, OVERSTOCK, IN_STOCK")
	}
	items, err := uc.repo.ListByAlert(ctx, s)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, dto.NewProductResponse(p, false))
	}
	return out, nil
}
