package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/pkg/logger"
)

// InventoryHandler maneja las mutaciones del libro de movimientos (protegido, admin|manager).
type InventoryHandler struct {
	uc  *inventory.LedgerUseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// Update godoc
// @Summary      Actualizar producto y registrar movimientos opcionales
// @Description  En una sola transacción: atributos, sobrescritura de cantidad, entrada (in_date, in_qty)
//
//	y salida (out_date, out_qty), en ese orden. Cualquier fallo revierte todo.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sku              path    string                     true   "SKU"
// @Param        Idempotency-Key  header  string                     false  "Clave para deduplicar reintentos"
// @Param        body             body    dto.UpdateProductRequest   true   "Campos a actualizar"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/sku/{sku} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	sku, ok := skuParam(c)
	if !ok {
		return missingSKU(c)
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProduct(c.Context(), sku, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RecordMovement godoc
// @Summary      Registrar entrada o salida
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sku              path    string               true   "SKU"
// @Param        Idempotency-Key  header  string               false  "Clave para deduplicar reintentos"
// @Param        body             body    dto.MovementRequest  true   "direction (IN|OUT), date (YYYY-MM-DD o RFC3339; vacío = hoy), qty"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/sku/{sku}/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	sku, ok := skuParam(c)
	if !ok {
		return missingSKU(c)
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordMovement(c.Context(), sku, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetQuantity godoc
// @Summary      Sobrescribir la cantidad (conteo físico)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sku              path    string                  true   "SKU"
// @Param        Idempotency-Key  header  string                  false  "Clave para deduplicar reintentos"
// @Param        body             body    dto.SetQuantityRequest  true   "quantity >= 0"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/sku/{sku}/quantity [put]
func (h *InventoryHandler) SetQuantity(c *fiber.Ctx) error {
	sku, ok := skuParam(c)
	if !ok {
		return missingSKU(c)
	}
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetQuantity(c.Context(), sku, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
