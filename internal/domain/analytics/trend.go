package analytics

import (
	"sort"
	"strconv"
	"time"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
)

// YearBucket totales de entradas y salidas de un año.
type YearBucket struct {
	Year   string
	InQty  int
	OutQty int
}

// MonthBucket totales de entradas y salidas de un mes del año consultado.
type MonthBucket struct {
	Month  string // Jan..Dec
	InQty  int
	OutQty int
}

// Aggregator agrupa fechas en el huso horario del negocio.
// Funciones puras: mismo log, mismo resultado.
type Aggregator struct {
	loc *time.Location
}

// NewAggregator construye el agregador; loc nil equivale a UTC.
func NewAggregator(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{loc: loc}
}

// Location huso usado para agrupar.
func (a *Aggregator) Location() *time.Location { return a.loc }

// CurrentYear año calendario de now en el huso del agregador.
func (a *Aggregator) CurrentYear(now time.Time) int {
	return now.In(a.loc).Year()
}

// YearlyTrend agrupa todos los movimientos por año de su fecha contable.
// Incluye cada año con actividad en cualquiera de los dos lados, ordenado ascendente.
func (a *Aggregator) YearlyTrend(log entity.MovementLog) []YearBucket {
	byYear := make(map[int]*YearBucket)
	bucket := func(y int) *YearBucket {
		b, ok := byYear[y]
		if !ok {
			b = &YearBucket{Year: strconv.Itoa(y)}
			byYear[y] = b
		}
		return b
	}
	for _, m := range log.In() {
		bucket(m.Date.In(a.loc).Year()).InQty += m.Qty
	}
	for _, m := range log.Out() {
		bucket(m.Date.In(a.loc).Year()).OutQty += m.Qty
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]YearBucket, 0, len(years))
	for _, y := range years {
		out = append(out, *byYear[y])
	}
	return out
}

// MonthlyTrend agrupa los movimientos de year por mes, en orden calendario.
// Los meses sin entradas ni salidas se omiten.
func (a *Aggregator) MonthlyTrend(log entity.MovementLog, year int) []MonthBucket {
	var in, out [12]int
	for _, m := range log.In() {
		d := m.Date.In(a.loc)
		if d.Year() == year {
			in[d.Month()-1] += m.Qty
		}
	}
	for _, m := range log.Out() {
		d := m.Date.In(a.loc)
		if d.Year() == year {
			out[d.Month()-1] += m.Qty
		}
	}

	res := make([]MonthBucket, 0, 12)
	for i := 0; i < 12; i++ {
		if in[i] == 0 && out[i] == 0 {
			continue
		}
		res = append(res, MonthBucket{
			Month:  time.Month(i + 1).String()[:3],
			InQty:  in[i],
			OutQty: out[i],
		})
	}
	return res
}

// SoldQuantity suma de todas las salidas, sin importar el año.
func SoldQuantity(log entity.MovementLog) int {
	total := 0
	for _, m := range log.Out() {
		total += m.Qty
	}
	return total
}
