package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
)

// Direction sentido de un movimiento de stock.
type Direction string

const (
	DirectionIn  Direction = "IN"  // entrada
	DirectionOut Direction = "OUT" // salida
)

// Valid indica si el sentido es IN u OUT.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Movement evento inmutable de entrada o salida.
// Date es la fecha contable (puede ser retroactiva); RecordedAt el instante en que se anotó.
type Movement struct {
	ID         string
	Direction  Direction
	Date       time.Time
	Qty        int
	RecordedAt time.Time
}

// MovementLog dos secuencias append-only (entradas y salidas) en orden de inserción.
// No expone mutación aleatoria: solo Append y copias de lectura.
type MovementLog struct {
	in  []Movement
	out []Movement
}

// NewMovementLog rehidrata un log desde persistencia respetando el orden recibido.
func NewMovementLog(in, out []Movement) MovementLog {
	l := MovementLog{}
	if len(in) > 0 {
		l.in = append(make([]Movement, 0, len(in)), in...)
	}
	if len(out) > 0 {
		l.out = append(make([]Movement, 0, len(out)), out...)
	}
	return l
}

// Append agrega un movimiento al final de la secuencia correspondiente.
// qty <= 0 devuelve ErrInvalidMovement sin modificar el log.
func (l *MovementLog) Append(dir Direction, date time.Time, qty int, recordedAt time.Time) (Movement, error) {
	if !dir.Valid() {
		return Movement{}, domain.NewValidationError("direction", "debe ser IN u OUT")
	}
	if qty <= 0 {
		return Movement{}, domain.ErrInvalidMovement
	}
	m := Movement{
		ID:         uuid.New().String(),
		Direction:  dir,
		Date:       date,
		Qty:        qty,
		RecordedAt: recordedAt,
	}
	if dir == DirectionIn {
		l.in = append(l.in, m)
	} else {
		l.out = append(l.out, m)
	}
	return m, nil
}

// In copia de las entradas en orden de inserción.
func (l MovementLog) In() []Movement { return append([]Movement(nil), l.in...) }

// Out copia de las salidas en orden de inserción.
func (l MovementLog) Out() []Movement { return append([]Movement(nil), l.out...) }

// Len número total de movimientos.
func (l MovementLog) Len() int { return len(l.in) + len(l.out) }
