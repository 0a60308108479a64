package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo escrituras del libro; se construye con la tx activa (ver TxRunner).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar una pgx.Tx para que FOR UPDATE tenga efecto.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *LedgerRepo) GetForUpdate(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE lower(sku) = lower($1) FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	if p.Log, err = loadMovementLog(ctx, r.q, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Update persiste atributos, cantidad y last_modified. El SKU no cambia.
func (r *LedgerRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET title = $2, category = $3, warehouse = $4, image = $5, price = $6,
			quantity = $7, min_stock = $8, max_stock = $9, last_modified = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Title, p.Category, p.Warehouse, p.Image, p.Price,
		p.Quantity, p.MinStock, p.MaxStock, p.LastModified,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// AppendMovement inserta un movimiento; seq conserva el orden de inserción.
func (r *LedgerRepo) AppendMovement(ctx context.Context, productID string, m entity.Movement) error {
	query := `
		INSERT INTO product_movements (id, product_id, direction, movement_date, qty, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, m.ID, productID, string(m.Direction), m.Date, m.Qty, m.RecordedAt)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}
