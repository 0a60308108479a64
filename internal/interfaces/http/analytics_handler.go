package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/analytics"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/pkg/logger"
)

// AnalyticsHandler maneja la analítica de movimientos por SKU.
type AnalyticsHandler struct {
	uc  *analytics.AnalyticsUseCase
	log *logger.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.AnalyticsUseCase, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, log: log}
}

// GetAnalytics godoc
// @Summary      Tendencias anual y mensual de un SKU
// @Description  sold_qty suma todas las salidas históricas; monthly_trend solo cubre el año pedido.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        sku   path   string  true   "SKU"
// @Param        year  query  int     false  "Año del desglose mensual (default: año actual)"
// @Success      200  {object}  dto.InventoryAnalyticsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/sku/{sku}/analytics [get]
func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	sku, ok := skuParam(c)
	if !ok {
		return missingSKU(c)
	}
	var req dto.AnalyticsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos", Field: "year"})
	}
	out, err := h.uc.GetAnalytics(c.Context(), sku, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetReport godoc
// @Summary      Reporte PDF de analítica de un SKU
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        sku   path   string  true   "SKU"
// @Param        year  query  int     false  "Año del desglose mensual"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/sku/{sku}/analytics/report [get]
func (h *AnalyticsHandler) GetReport(c *fiber.Ctx) error {
	sku, ok := skuParam(c)
	if !ok {
		return missingSKU(c)
	}
	var req dto.AnalyticsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos", Field: "year"})
	}
	pdf, err := h.uc.GenerateReport(c.Context(), sku, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="analytics_`+sanitizeFilename(sku)+`.pdf"`)
	return c.Send(pdf)
}

// ExportMovements godoc
// @Summary      Exportar historial de movimientos
// @Tags         analytics
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        sku     path   string  true   "SKU"
// @Param        format  query  string  false  "xlsx | csv"  default(xlsx)
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/sku/{sku}/movements/export [get]
func (h *AnalyticsHandler) ExportMovements(c *fiber.Ctx) error {
	sku, ok := skuParam(c)
	if !ok {
		return missingSKU(c)
	}
	file, err := h.uc.ExportMovements(c.Context(), sku, c.Query("format"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)
	return c.Send(file.Content)
}

func sanitizeFilename(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if !(ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '-' || ch == '_') {
			b[i] = '_'
		}
	}
	return string(b)
}
