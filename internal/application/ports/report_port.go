package ports

import "github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"

// AnalyticsReportGenerator genera la representación imprimible de la analítica de un SKU.
type AnalyticsReportGenerator interface {
	GenerateAnalyticsReport(report *dto.InventoryAnalyticsDTO) ([]byte, error)
}

// MovementExporter serializa el historial de movimientos en el formato pedido.
type MovementExporter interface {
	Export(data *dto.MovementExportDTO, format string) (*dto.ExportFileDTO, error)
}
