package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un SKU del catálogo junto con su libro de movimientos.
// Quantity solo se modifica a través de inventory.Ledger; Log es propiedad exclusiva del producto.
type Product struct {
	ID           string
	SKU          string // se guarda tal cual; la búsqueda es case-insensitive
	Title        string
	Category     string
	Warehouse    string
	Image        string
	Price        decimal.Decimal
	Quantity     int
	MinStock     int
	MaxStock     int
	Log          MovementLog
	LastModified time.Time
	CreatedAt    time.Time
}

// Clone devuelve una copia profunda (el log no comparte slices con el original).
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Log = NewMovementLog(p.Log.In(), p.Log.Out())
	return &cp
}
