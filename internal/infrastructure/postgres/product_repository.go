package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, title, category, warehouse, image, price, quantity, min_stock, max_stock, last_modified, created_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. El índice único sobre lower(sku) impide duplicados.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Title, p.Category, p.Warehouse, p.Image, p.Price,
		p.Quantity, p.MinStock, p.MaxStock, p.LastModified, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetBySKU obtiene un producto con su historial; la comparación ignora mayúsculas.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE lower(sku) = lower($1)`
	p, err := scanProduct(r.q.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	if p.Log, err = loadMovementLog(ctx, r.q, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// List filtra y pagina ordenando por last_modified descendente.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	if offset < 0 {
		offset = 0
	}
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		conds = append(conds, "sku ILIKE "+arg(containsPattern(s)))
	}
	if s := strings.TrimSpace(f.Category); s != "" {
		conds = append(conds, "lower(category) = lower("+arg(s)+")")
	}
	if s := strings.TrimSpace(f.Warehouse); s != "" {
		conds = append(conds, "lower(warehouse) = lower("+arg(s)+")")
	}
	if f.QtyRange != nil {
		if f.QtyRange.Min != nil {
			conds = append(conds, "quantity >= "+arg(*f.QtyRange.Min))
		}
		if f.QtyRange.Max != nil {
			conds = append(conds, "quantity <= "+arg(*f.QtyRange.Max))
		}
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		` ORDER BY last_modified DESC, sku LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)
	items, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByAlert aplica en SQL la misma partición que inventory.AlertStatus.
func (r *ProductRepo) ListByAlert(ctx context.Context, status inventory.Status) ([]*entity.Product, error) {
	var cond string
	switch status {
	case inventory.StatusOutOfStock:
		cond = "quantity <= 0"
	case inventory.StatusLowStock:
		cond = "quantity > 0 AND quantity < min_stock"
	case inventory.StatusOverstock:
		cond = "quantity > 0 AND quantity >= min_stock AND max_stock > 0 AND quantity > max_stock"
	case inventory.StatusInStock:
		cond = "quantity > 0 AND quantity >= min_stock AND (max_stock <= 0 OR quantity <= max_stock)"
	default:
		return nil, domain.NewValidationError("status", "estado desconocido")
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + cond + ` ORDER BY last_modified DESC, sku`
	return r.queryProducts(ctx, query)
}

// DistinctCategories categorías no vacías, ordenadas.
func (r *ProductRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

// DistinctWarehouses bodegas no vacías, ordenadas.
func (r *ProductRepo) DistinctWarehouses(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "warehouse")
}

func (r *ProductRepo) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT `+column+` FROM products WHERE `+column+` <> '' ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	return out, nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Title, &p.Category, &p.Warehouse, &p.Image, &p.Price,
		&p.Quantity, &p.MinStock, &p.MaxStock, &p.LastModified, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// loadMovementLog lee el historial en orden de inserción (seq).
func loadMovementLog(ctx context.Context, q Querier, productID string) (entity.MovementLog, error) {
	rows, err := q.Query(ctx, `
		SELECT id, direction, movement_date, qty, recorded_at
		FROM product_movements WHERE product_id = $1 ORDER BY seq`, productID)
	if err != nil {
		return entity.MovementLog{}, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var in, out []entity.Movement
	for rows.Next() {
		var m entity.Movement
		var dir string
		if err := rows.Scan(&m.ID, &dir, &m.Date, &m.Qty, &m.RecordedAt); err != nil {
			return entity.MovementLog{}, fmt.Errorf("scan movement: %w", err)
		}
		m.Direction = entity.Direction(dir)
		if m.Direction == entity.DirectionIn {
			in = append(in, m)
		} else {
			out = append(out, m)
		}
	}
	if err := rows.Err(); err != nil {
		return entity.MovementLog{}, fmt.Errorf("list movements: %w", err)
	}
	return entity.NewMovementLog(in, out), nil
}
