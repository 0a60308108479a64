package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/inventory"
)

// CreateProductRequest entrada para crear un producto (sin movimientos).
type CreateProductRequest struct {
	SKU       string          `json:"sku"`
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Warehouse string          `json:"warehouse"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	MinStock  int             `json:"min_stock"`
	MaxStock  int             `json:"max_stock"`
}

// UpdateProductRequest actualización parcial: solo cambian los campos presentes.
// Quantity sobrescribe la existencia; InQty/InDate y OutQty/OutDate registran movimientos
// (en ese orden, después de atributos y cantidad).
type UpdateProductRequest struct {
	Title     *string          `json:"title"`
	Category  *string          `json:"category"`
	Warehouse *string          `json:"warehouse"`
	Image     *string          `json:"image"`
	Price     *decimal.Decimal `json:"price"`
	Quantity  *int             `json:"quantity"`
	MinStock  *int             `json:"min_stock"`
	MaxStock  *int             `json:"max_stock"`
	InDate    *string          `json:"in_date"`
	InQty     *int             `json:"in_qty"`
	OutDate   *string          `json:"out_date"`
	OutQty    *int             `json:"out_qty"`
}

// MovementRequest entrada para registrar una entrada o salida.
// Date admite YYYY-MM-DD o RFC 3339; vacío usa el instante actual.
type MovementRequest struct {
	Direction string `json:"direction"`
	Date      string `json:"date"`
	Qty       int    `json:"qty"`
}

// SetQuantityRequest conteo físico absoluto.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID         string    `json:"id"`
	Direction  string    `json:"direction"`
	Date       time.Time `json:"date"`
	Qty        int       `json:"qty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ProductResponse salida de un producto. Status usa la partición del listado,
// AlertStatus la de umbrales del producto.
type ProductResponse struct {
	ID           string             `json:"id"`
	SKU          string             `json:"sku"`
	Title        string             `json:"title"`
	Category     string             `json:"category"`
	Warehouse    string             `json:"warehouse"`
	Image        string             `json:"image,omitempty"`
	Price        decimal.Decimal    `json:"price"`
	Quantity     int                `json:"quantity"`
	MinStock     int                `json:"min_stock"`
	MaxStock     int                `json:"max_stock"`
	Status       string             `json:"status"`
	AlertStatus  string             `json:"alert_status"`
	LastModified time.Time          `json:"last_modified"`
	CreatedAt    time.Time          `json:"created_at"`
	InMovements  []MovementResponse `json:"in_movements,omitempty"`
	OutMovements []MovementResponse `json:"out_movements,omitempty"`
}

// ProductListRequest filtros y paginación del listado.
type ProductListRequest struct {
	Search    string `query:"search"`
	Category  string `query:"category"`
	Warehouse string `query:"warehouse"`
	Status    string `query:"status"`
	PageRequest
}

// ProductListResponse página del catálogo.
type ProductListResponse struct {
	Items       []ProductResponse `json:"items"`
	Total       int               `json:"total"`
	TotalPages  int               `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
}

// FilterOptionsResponse valores disponibles para los filtros del listado.
type FilterOptionsResponse struct {
	Categories []string `json:"categories"`
	Warehouses []string `json:"warehouses"`
	Statuses   []string `json:"statuses"`
}

// NewProductResponse mapea la entidad; withLog incluye el historial de movimientos.
func NewProductResponse(p *entity.Product, withLog bool) ProductResponse {
	out := ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Title:        p.Title,
		Category:     p.Category,
		Warehouse:    p.Warehouse,
		Image:        p.Image,
		Price:        p.Price,
		Quantity:     p.Quantity,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		Status:       string(inventory.ListingStatus(p.Quantity)),
		AlertStatus:  string(inventory.AlertStatus(p.Quantity, p.MinStock, p.MaxStock)),
		LastModified: p.LastModified,
		CreatedAt:    p.CreatedAt,
	}
	if withLog {
		out.InMovements = toMovementResponses(p.Log.In())
		out.OutMovements = toMovementResponses(p.Log.Out())
	}
	return out
}

func toMovementResponses(ms []entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, MovementResponse{
			ID:         m.ID,
			Direction:  string(m.Direction),
			Date:       m.Date,
			Qty:        m.Qty,
			RecordedAt: m.RecordedAt,
		})
	}
	return out
}
