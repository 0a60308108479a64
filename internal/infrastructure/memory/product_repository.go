package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria del catálogo.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el adaptador sobre el almacén.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

// Create guarda el producto; SKU repetido (sin distinguir mayúsculas) devuelve ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	key := fold(product.SKU)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[key]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[key] = product.Clone()
	return nil
}

// GetBySKU copia del producto con su log; (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[fold(sku)]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

// List filtra, ordena por LastModified descendente y pagina.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	search := fold(strings.TrimSpace(filter.Search))
	category := fold(strings.TrimSpace(filter.Category))
	warehouse := fold(strings.TrimSpace(filter.Warehouse))

	r.s.mu.RLock()
	matched := make([]*entity.Product, 0, len(r.s.products))
	for key, p := range r.s.products {
		if search != "" && !strings.Contains(key, search) {
			continue
		}
		if category != "" && fold(p.Category) != category {
			continue
		}
		if warehouse != "" && fold(p.Warehouse) != warehouse {
			continue
		}
		if filter.QtyRange != nil && !filter.QtyRange.Contains(p.Quantity) {
			continue
		}
		matched = append(matched, withoutLog(p))
	}
	r.s.mu.RUnlock()

	sortByLastModified(matched)
	total := len(matched)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []*entity.Product{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

// ListByAlert productos cuyo estado por umbrales coincide con status.
func (r *ProductRepo) ListByAlert(_ context.Context, status inventory.Status) ([]*entity.Product, error) {
	r.s.mu.RLock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if inventory.AlertStatus(p.Quantity, p.MinStock, p.MaxStock) == status {
			out = append(out, withoutLog(p))
		}
	}
	r.s.mu.RUnlock()
	sortByLastModified(out)
	return out, nil
}

// DistinctCategories categorías no vacías, ordenadas.
func (r *ProductRepo) DistinctCategories(_ context.Context) ([]string, error) {
	return r.distinct(func(p *entity.Product) string { return p.Category }), nil
}

// DistinctWarehouses bodegas no vacías, ordenadas.
func (r *ProductRepo) DistinctWarehouses(_ context.Context) ([]string, error) {
	return r.distinct(func(p *entity.Product) string { return p.Warehouse }), nil
}

func (r *ProductRepo) distinct(field func(*entity.Product) string) []string {
	r.s.mu.RLock()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range r.s.products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	r.s.mu.RUnlock()
	sort.Strings(out)
	return out
}

func withoutLog(p *entity.Product) *entity.Product {
	cp := *p
	cp.Log = entity.MovementLog{}
	return &cp
}

func sortByLastModified(ps []*entity.Product) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].LastModified.Equal(ps[j].LastModified) {
			return ps[i].SKU < ps[j].SKU
		}
		return ps[i].LastModified.After(ps[j].LastModified)
	})
}
