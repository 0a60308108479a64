package repository

import (
	"context"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
)

// LedgerRepository puerto de escritura usado dentro de una transacción.
// GetForUpdate bloquea el SKU hasta el fin de la transacción; otras transacciones
// sobre el mismo SKU esperan, las de otros SKU no.
type LedgerRepository interface {
	GetForUpdate(ctx context.Context, sku string) (*entity.Product, error)
	// Update persiste atributos, Quantity y LastModified (no toca el log).
	Update(ctx context.Context, product *entity.Product) error
	AppendMovement(ctx context.Context, productID string, movement entity.Movement) error
}
