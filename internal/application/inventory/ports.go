package inventory

import (
	"context"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando el repositorio del libro atado a ella.
// Si fn devuelve error se hace Rollback y ninguna escritura queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(ledgerRepo repository.LedgerRepository) error) error
}
