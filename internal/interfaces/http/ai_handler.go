package http

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/usecase"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/pkg/logger"
)

// maxUploadBytes tope de lectura del archivo; el caso de uso valida el límite exacto.
const maxUploadBytes = 10<<20 + 1

// AIHandler maneja la inspección visual de calidad y el asistente de stock.
type AIHandler struct {
	quality   *usecase.QualityCheckUseCase
	assistant *usecase.AssistantUseCase
	log       *logger.Logger
}

// NewAIHandler construye el handler.
func NewAIHandler(quality *usecase.QualityCheckUseCase, assistant *usecase.AssistantUseCase, log *logger.Logger) *AIHandler {
	return &AIHandler{quality: quality, assistant: assistant, log: log}
}

// QualityCheck godoc
// @Summary      Inspección visual de calidad
// @Description  Envía la imagen al servicio de inspección. Si el veredicto es NOT_OK se crea una
//
//	notificación DEFECT para cada usuario admin y manager. Nunca modifica el inventario.
//
// @Tags         ai
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file    true   "Imagen del producto (máx. 10 MB)"
// @Param        sku    formData  string  false  "SKU inspeccionado"
// @Success      200  {object}  dto.QualityCheckResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/products/quality-check [post]
func (h *AIHandler) QualityCheck(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "image es requerida", Field: "image"})
	}
	f, err := fh.Open()
	if err != nil {
		return badBody(c)
	}
	defer f.Close()
	img, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return badBody(c)
	}

	out, err := h.quality.Check(c.Context(), dto.QualityCheckRequest{
		SKU:      strings.TrimSpace(c.FormValue("sku")),
		Filename: fh.Filename,
		Image:    img,
	})
	if err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			if strings.Contains(err.Error(), "INSPECTION_URL") {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Code: "INSPECTION_UNAVAILABLE", Message: "el servicio de inspección no está configurado",
				})
			}
			if isTimeout(err) {
				return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{
					Code: "TIMEOUT", Message: "el servicio de inspección tardó demasiado; intenta de nuevo",
				})
			}
		}
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Ask godoc
// @Summary      Asistente de stock
// @Description  Enruta la pregunta por palabras clave: stock bajo, agotado, sobre stock, alertas, ubicación.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssistantRequest  true  "question"
// @Success      200  {object}  dto.AssistantResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/assistant/ask [post]
func (h *AIHandler) Ask(c *fiber.Ctx) error {
	var req dto.AssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.assistant.Ask(c.Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// isTimeout detecta errores de timeout/cancelación de contexto en el mensaje de error.
func isTimeout(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded") ||
		strings.Contains(msg, "cancelación")
}
