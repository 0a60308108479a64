package inventory

import (
	"time"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
)

// Policy ajustes del libro configurables por entorno.
type Policy struct {
	// AllowNegative permite que una salida deje la cantidad por debajo de cero.
	AllowNegative bool
	// ReconcileOverwrites registra un movimiento sintético por la diferencia en cada SetQuantity.
	ReconcileOverwrites bool
}

// Ledger servicio de dominio: único punto que modifica Quantity y Log de un producto.
// Para cualquier secuencia de RecordIn/RecordOut aceptados se cumple
// Quantity == base + Σentradas - Σsalidas, donde base es la última cantidad fijada por SetQuantity.
type Ledger struct {
	policy Policy
}

// NewLedger construye el servicio con la política indicada.
func NewLedger(policy Policy) *Ledger {
	return &Ledger{policy: policy}
}

// Policy devuelve la política vigente.
func (l *Ledger) Policy() Policy { return l.policy }

// RecordIn anota una entrada y suma qty a la cantidad. No hay tope superior.
func (l *Ledger) RecordIn(p *entity.Product, date time.Time, qty int, now time.Time) (entity.Movement, error) {
	if qty <= 0 {
		return entity.Movement{}, domain.ErrInvalidMovement
	}
	m, err := p.Log.Append(entity.DirectionIn, date, qty, now)
	if err != nil {
		return entity.Movement{}, err
	}
	p.Quantity += qty
	p.LastModified = now
	return m, nil
}

// RecordOut anota una salida y resta qty de la cantidad.
// Sin AllowNegative, qty > Quantity devuelve ErrInsufficientStock sin tocar el producto.
func (l *Ledger) RecordOut(p *entity.Product, date time.Time, qty int, now time.Time) (entity.Movement, error) {
	if qty <= 0 {
		return entity.Movement{}, domain.ErrInvalidMovement
	}
	if !l.policy.AllowNegative && qty > p.Quantity {
		return entity.Movement{}, domain.ErrInsufficientStock
	}
	m, err := p.Log.Append(entity.DirectionOut, date, qty, now)
	if err != nil {
		return entity.Movement{}, err
	}
	p.Quantity -= qty
	p.LastModified = now
	return m, nil
}

// SetQuantity fija la cantidad de forma absoluta (conteo físico, corrección).
// Por defecto no deja rastro en el log; con ReconcileOverwrites devuelve el movimiento
// sintético fechado en now que explica la diferencia. Sin diferencia devuelve nil.
func (l *Ledger) SetQuantity(p *entity.Product, newQty int, now time.Time) (*entity.Movement, error) {
	if newQty < 0 {
		return nil, domain.NewValidationError("quantity", "no puede ser negativa")
	}
	delta := newQty - p.Quantity
	p.LastModified = now
	if !l.policy.ReconcileOverwrites || delta == 0 {
		p.Quantity = newQty
		return nil, nil
	}
	dir, qty := entity.DirectionIn, delta
	if delta < 0 {
		dir, qty = entity.DirectionOut, -delta
	}
	m, err := p.Log.Append(dir, now, qty, now)
	if err != nil {
		return nil, err
	}
	p.Quantity = newQty
	return &m, nil
}
