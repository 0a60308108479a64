package inventory

// Status estado de stock de un producto.
type Status string

const (
	StatusOutOfStock Status = "OUT_OF_STOCK"
	StatusLowStock   Status = "LOW_STOCK"
	StatusInStock    Status = "IN_STOCK"
	StatusOverstock  Status = "OVERSTOCK"
)

// ListingLowStockLimit umbral global del catálogo: por debajo es stock bajo.
const ListingLowStockLimit = 10

// ListingStatuses estados que admite el filtro del catálogo, en el orden en que se muestran.
var ListingStatuses = []Status{StatusInStock, StatusLowStock, StatusOutOfStock}

// ParseStatus acepta el nombre canónico o la etiqueta legible ("Low Stock").
func ParseStatus(s string) (Status, bool) {
	switch s {
	case string(StatusOutOfStock), "Out of Stock":
		return StatusOutOfStock, true
	case string(StatusLowStock), "Low Stock":
		return StatusLowStock, true
	case string(StatusInStock), "In Stock":
		return StatusInStock, true
	case string(StatusOverstock), "Overstock":
		return StatusOverstock, true
	}
	return "", false
}

// ListingStatus partición fija usada por el listado y sus filtros:
// qty <= 0 agotado, 0 < qty < 10 bajo, qty >= 10 disponible.
func ListingStatus(qty int) Status {
	switch {
	case qty <= 0:
		return StatusOutOfStock
	case qty < ListingLowStockLimit:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// QtyRange rango cerrado de cantidades; nil en un extremo significa sin límite.
type QtyRange struct {
	Min *int
	Max *int
}

// ListingRange traduce un estado de ListingStatus al rango que debe filtrar la persistencia.
// ok es falso para estados que la partición del listado no produce.
func ListingRange(s Status) (r QtyRange, ok bool) {
	zero, one, nine, ten := 0, 1, ListingLowStockLimit-1, ListingLowStockLimit
	switch s {
	case StatusOutOfStock:
		return QtyRange{Max: &zero}, true
	case StatusLowStock:
		return QtyRange{Min: &one, Max: &nine}, true
	case StatusInStock:
		return QtyRange{Min: &ten}, true
	}
	return QtyRange{}, false
}

// Contains indica si qty cae dentro del rango.
func (r QtyRange) Contains(qty int) bool {
	if r.Min != nil && qty < *r.Min {
		return false
	}
	if r.Max != nil && qty > *r.Max {
		return false
	}
	return true
}

// AlertStatus partición por umbrales del propio producto, usada para alertas.
// Desigualdades estrictas: qty == min o qty == max no genera alerta.
// maxStock <= 0 significa que el producto no tiene tope configurado.
func AlertStatus(qty, minStock, maxStock int) Status {
	switch {
	case qty <= 0:
		return StatusOutOfStock
	case qty < minStock:
		return StatusLowStock
	case maxStock > 0 && qty > maxStock:
		return StatusOverstock
	default:
		return StatusInStock
	}
}
