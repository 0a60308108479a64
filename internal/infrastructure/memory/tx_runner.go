package memory

import (
	"context"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones en memoria: los SKU leídos con GetForUpdate quedan bloqueados
// hasta el final; las escrituras se acumulan y se publican juntas al confirmar.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn; si devuelve error descarta las escrituras (Rollback).
func (r *TxRunner) Run(ctx context.Context, fn func(ledgerRepo repository.LedgerRepository) error) error {
	tx := &ledgerTx{
		s:         r.s,
		locked:    make(map[string]bool),
		updates:   make(map[string]*entity.Product),
		movements: make(map[string][]entity.Movement),
	}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// ledgerTx implementa LedgerRepository dentro de una transacción.
type ledgerTx struct {
	s         *Store
	locked    map[string]bool
	updates   map[string]*entity.Product // por ID
	movements map[string][]entity.Movement
	order     []string
}

func (tx *ledgerTx) GetForUpdate(ctx context.Context, sku string) (*entity.Product, error) {
	key := fold(sku)
	if !tx.locked[key] {
		if err := tx.s.lockSKU(ctx, key); err != nil {
			return nil, err
		}
		tx.locked[key] = true
	}
	tx.s.mu.RLock()
	p, ok := tx.s.products[key]
	tx.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if pending, ok := tx.updates[p.ID]; ok {
		return pending.Clone(), nil
	}
	return p.Clone(), nil
}

func (tx *ledgerTx) Update(_ context.Context, product *entity.Product) error {
	if _, ok := tx.updates[product.ID]; !ok {
		tx.order = append(tx.order, product.ID)
	}
	tx.updates[product.ID] = product.Clone()
	return nil
}

func (tx *ledgerTx) AppendMovement(_ context.Context, productID string, m entity.Movement) error {
	tx.movements[productID] = append(tx.movements[productID], m)
	return nil
}

func (tx *ledgerTx) commit() {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()

	byID := make(map[string]string, len(tx.s.products))
	for key, p := range tx.s.products {
		byID[p.ID] = key
	}
	ids := append([]string(nil), tx.order...)
	for id := range tx.movements {
		if _, ok := tx.updates[id]; !ok {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		key, ok := byID[id]
		if !ok {
			continue
		}
		stored := tx.s.products[key]
		next := stored.Clone()
		if upd, ok := tx.updates[id]; ok {
			next = upd.Clone()
		}
		in, out := stored.Log.In(), stored.Log.Out()
		for _, m := range tx.movements[id] {
			if m.Direction == entity.DirectionIn {
				in = append(in, m)
			} else {
				out = append(out, m)
			}
		}
		next.Log = entity.NewMovementLog(in, out)
		tx.s.products[key] = next
	}
}

func (tx *ledgerTx) release() {
	for key := range tx.locked {
		tx.s.unlockSKU(key)
	}
}
