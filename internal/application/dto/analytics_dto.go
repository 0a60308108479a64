package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// AnalyticsRequest parámetros para GET /api/products/sku/:sku/analytics.
type AnalyticsRequest struct {
	Year int `query:"year"` // año del desglose mensual; 0 = año actual
}

// ── Series ────────────────────────────────────────────────────────────────────

// YearTrendDTO totales de un año con actividad.
type YearTrendDTO struct {
	Year   string `json:"year"`
	InQty  int    `json:"in_qty"`
	OutQty int    `json:"out_qty"`
}

// MonthTrendDTO totales de un mes con actividad del año consultado.
type MonthTrendDTO struct {
	Month  string `json:"month"` // Jan..Dec
	InQty  int    `json:"in_qty"`
	OutQty int    `json:"out_qty"`
}

// InventoryAnalyticsDTO respuesta de analítica de un SKU.
// SoldQty abarca todo el historial; MonthlyTrend solo el año Year.
type InventoryAnalyticsDTO struct {
	SKU          string          `json:"sku"`
	Title        string          `json:"title"`
	Quantity     int             `json:"quantity"`
	SoldQty      int             `json:"sold_qty"`
	Price        decimal.Decimal `json:"price"`
	Year         int             `json:"year"`
	YearlyTrend  []YearTrendDTO  `json:"yearly_trend"`
	MonthlyTrend []MonthTrendDTO `json:"monthly_trend"`
}

// ── Exportación ───────────────────────────────────────────────────────────────

// Formatos de exportación de movimientos.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

// MovementExportDTO datos para exportar el historial de un SKU.
type MovementExportDTO struct {
	SKU       string
	Title     string
	Movements []MovementResponse // ordenados por fecha contable
}

// ExportFileDTO archivo generado.
type ExportFileDTO struct {
	Filename    string
	ContentType string
	Content     []byte
}
