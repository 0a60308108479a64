// Package analytics contiene los casos de uso de lectura sobre el historial de movimientos:
// tendencias por año y mes, reporte imprimible y exportación.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	domainanalytics "github.com/dedeepya55/SmartStockAIBackend/internal/domain/analytics"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

const (
	minYear = 1900
	maxYear = 9999
)

// AnalyticsUseCase recalcula la analítica en cada petición a partir del log almacenado;
// no mantiene agregados en caché. Una lectura concurrente con una mutación ve el estado previo o el posterior.
type AnalyticsUseCase struct {
	products   repository.ProductRepository
	aggregator *domainanalytics.Aggregator
	reports    ports.AnalyticsReportGenerator
	exporter   ports.MovementExporter
	now        func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso. reports y exporter pueden ser nil si no se exponen.
func NewAnalyticsUseCase(
	products repository.ProductRepository,
	aggregator *domainanalytics.Aggregator,
	reports ports.AnalyticsReportGenerator,
	exporter ports.MovementExporter,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		products:   products,
		aggregator: aggregator,
		reports:    reports,
		exporter:   exporter,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AnalyticsUseCase) WithClock(now func() time.Time) *AnalyticsUseCase {
	uc.now = now
	return uc
}

// GetAnalytics tendencia anual completa, desglose mensual de year (0 = año actual) y total vendido.
func (uc *AnalyticsUseCase) GetAnalytics(ctx context.Context, sku string, req dto.AnalyticsRequest) (*dto.InventoryAnalyticsDTO, error) {
	year := req.Year
	if year == 0 {
		year = uc.aggregator.CurrentYear(uc.now())
	}
	if year < minYear || year > maxYear {
		return nil, domain.NewValidationError("year", fmt.Sprintf("debe estar entre %d y %d", minYear, maxYear))
	}

	product, err := uc.load(ctx, sku)
	if err != nil {
		return nil, err
	}

	out := &dto.InventoryAnalyticsDTO{
		SKU:          product.SKU,
		Title:        product.Title,
		Quantity:     product.Quantity,
		SoldQty:      domainanalytics.SoldQuantity(product.Log),
		Price:        product.Price,
		Year:         year,
		YearlyTrend:  make([]dto.YearTrendDTO, 0),
		MonthlyTrend: make([]dto.MonthTrendDTO, 0),
	}
	for _, b := range uc.aggregator.YearlyTrend(product.Log) {
		out.YearlyTrend = append(out.YearlyTrend, dto.YearTrendDTO{Year: b.Year, InQty: b.InQty, OutQty: b.OutQty})
	}
	for _, b := range uc.aggregator.MonthlyTrend(product.Log, year) {
		out.MonthlyTrend = append(out.MonthlyTrend, dto.MonthTrendDTO{Month: b.Month, InQty: b.InQty, OutQty: b.OutQty})
	}
	return out, nil
}

// GenerateReport PDF con la misma información que GetAnalytics.
func (uc *AnalyticsUseCase) GenerateReport(ctx context.Context, sku string, req dto.AnalyticsRequest) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("generador de reportes no configurado")
	}
	data, err := uc.GetAnalytics(ctx, sku, req)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.reports.GenerateAnalyticsReport(data)
	if err != nil {
		return nil, fmt.Errorf("generar reporte: %w", err)
	}
	return pdf, nil
}

// ExportMovements historial completo ordenado por fecha contable (estable ante fechas repetidas).
func (uc *AnalyticsUseCase) ExportMovements(ctx context.Context, sku, format string) (*dto.ExportFileDTO, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("exportador no configurado")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = dto.ExportFormatXLSX
	}
	if format != dto.ExportFormatXLSX && format != dto.ExportFormatCSV {
		return nil, domain.NewValidationError("format", "valores: xlsx, csv")
	}

	product, err := uc.load(ctx, sku)
	if err != nil {
		return nil, err
	}
	movements := append(product.Log.In(), product.Log.Out()...)
	sort.SliceStable(movements, func(i, j int) bool { return movements[i].Date.Before(movements[j].Date) })

	data := &dto.MovementExportDTO{SKU: product.SKU, Title: product.Title}
	for _, m := range movements {
		data.Movements = append(data.Movements, toMovementResponse(m))
	}
	file, err := uc.exporter.Export(data, format)
	if err != nil {
		return nil, fmt.Errorf("exportar movimientos: %w", err)
	}
	return file, nil
}

func (uc *AnalyticsUseCase) load(ctx context.Context, sku string) (*entity.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.NewValidationError("sku", "es requerido")
	}
	product, err := uc.products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func toMovementResponse(m entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         m.ID,
		Direction:  string(m.Direction),
		Date:       m.Date,
		Qty:        m.Qty,
		RecordedAt: m.RecordedAt,
	}
}
