package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/inventory"
)

var (
	day  = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	now  = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
	prev = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
)

func newProduct(qty int) *entity.Product {
	return &entity.Product{SKU: "ABC-1", Quantity: qty, LastModified: prev}
}

// sumLog recalcula la cantidad esperada a partir del log.
func sumLog(base int, p *entity.Product) int {
	total := base
	for _, m := range p.Log.In() {
		total += m.Qty
	}
	for _, m := range p.Log.Out() {
		total -= m.Qty
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante cantidad/log
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_SecuenciaMantieneInvariante(t *testing.T) {
	l := inventory.NewLedger(inventory.Policy{})
	p := newProduct(7)

	steps := []struct {
		dir entity.Direction
		qty int
	}{
		{entity.DirectionIn, 10}, {entity.DirectionOut, 3}, {entity.DirectionIn, 1},
		{entity.DirectionOut, 15}, {entity.DirectionIn, 2},
	}
	for i, s := range steps {
		var err error
		if s.dir == entity.DirectionIn {
			_, err = l.RecordIn(p, day, s.qty, now)
		} else {
			_, err = l.RecordOut(p, day, s.qty, now)
		}
		require.NoError(t, err, "paso %d", i)
		assert.Equal(t, sumLog(7, p), p.Quantity, "invariante tras paso %d", i)
	}
	assert.Equal(t, 2, p.Quantity)
	assert.Equal(t, now, p.LastModified)
}

func TestLedger_RecordInSinTopeSuperior(t *testing.T) {
	l := inventory.NewLedger(inventory.Policy{})
	p := newProduct(0)
	p.MaxStock = 5

	m, err := l.RecordIn(p, day, 50, now)
	require.NoError(t, err)
	assert.Equal(t, 50, p.Quantity, "superar maxStock es un estado reportable, no un error")
	assert.Equal(t, entity.DirectionIn, m.Direction)
	assert.Equal(t, day, m.Date)
	assert.Equal(t, now, m.RecordedAt)
}

func TestLedger_RechazaCantidadNoPositivaSinEfectos(t *testing.T) {
	l := inventory.NewLedger(inventory.Policy{})

	for _, qty := range []int{0, -3} {
		p := newProduct(5)
		_, errIn := l.RecordIn(p, day, qty, now)
		_, errOut := l.RecordOut(p, day, qty, now)

		assert.ErrorIs(t, errIn, domain.ErrInvalidMovement)
		assert.ErrorIs(t, errOut, domain.ErrInvalidMovement)
		assert.Equal(t, 5, p.Quantity)
		assert.Equal(t, 0, p.Log.Len())
		assert.Equal(t, prev, p.LastModified, "un rechazo no refresca LastModified")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas: modo estricto vs permisivo
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_RecordOutEstrictoRechazaStockInsuficiente(t *testing.T) {
	l := inventory.NewLedger(inventory.Policy{})
	p := newProduct(1)

	_, err := l.RecordOut(p, day, 2, now)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, p.Quantity)
	assert.Empty(t, p.Log.Out())

	// Exactamente la existencia sí se permite.
	_, err = l.RecordOut(p, day, 1, now)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
}

func TestLedger_RecordOutPermisivoPermiteNegativo(t *testing.T) {
	l := inventory.NewLedger(inventory.Policy{AllowNegative: true})
	p := newProduct(1)

	_, err := l.RecordOut(p, day, 4, now)
	require.NoError(t, err)
	assert.Equal(t, -3, p.Quantity)
	assert.Equal(t, sumLog(1, p), p.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_SetQuantitySinMovimiento(t *testing.T) {
	l := inventory.NewLedger(inventory.Policy{})
	p := newProduct(3)
	_, err := l.RecordIn(p, day, 2, now)
	require.NoError(t, err)

	m, err := l.SetQuantity(p, 40, now)
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Equal(t, 40, p.Quantity)
	assert.Equal(t, 1, p.Log.Len(), "la sobrescritura no agrega movimientos")

	// La nueva base es 40: el invariante vuelve a cumplirse desde aquí.
	_, err = l.RecordOut(p, day, 5, now)
	require.NoError(t, err)
	assert.Equal(t, 35, p.Quantity)
}

func TestLedger_SetQuantityConReconciliacion(t *testing.T) {
	l := inventory.NewLedger(inventory.Policy{ReconcileOverwrites: true})

	p := newProduct(10)
	m, err := l.SetQuantity(p, 4, now)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, entity.DirectionOut, m.Direction)
	assert.Equal(t, 6, m.Qty)
	assert.Equal(t, now, m.Date)
	assert.Equal(t, sumLog(10, p), p.Quantity)

	m, err = l.SetQuantity(p, 9, now)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, entity.DirectionIn, m.Direction)
	assert.Equal(t, 5, m.Qty)

	m, err = l.SetQuantity(p, 9, now)
	require.NoError(t, err)
	assert.Nil(t, m, "sin diferencia no hay movimiento sintético")
	assert.Equal(t, sumLog(10, p), p.Quantity)
}

func TestLedger_SetQuantityNegativaEsValidacion(t *testing.T) {
	l := inventory.NewLedger(inventory.Policy{})
	p := newProduct(3)

	_, err := l.SetQuantity(p, -1, now)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Field)
	assert.Equal(t, 3, p.Quantity)
	assert.Equal(t, prev, p.LastModified)
}
