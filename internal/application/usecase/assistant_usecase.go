package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

// Intenciones reconocidas por el asistente.
const (
	IntentLowStock   = "low_stock"
	IntentOutOfStock = "out_of_stock"
	IntentOverstock  = "overstock"
	IntentAlerts     = "alerts"
	IntentMisplaced  = "misplaced"
	IntentHelp       = "help"
)

const assistantAlertLimit = 20

// intentRule palabras clave (minúsculas) que activan una intención; se evalúan en orden.
type intentRule struct {
	intent   string
	keywords []string
}

var intentRules = []intentRule{
	{IntentOutOfStock, []string{"out of stock", "agotado", "sin stock", "sin existencias"}},
	{IntentLowStock, []string{"low stock", "stock bajo", "poco stock", "bajo stock"}},
	{IntentOverstock, []string{"overstock", "sobrestock", "exceso", "sobre stock"}},
	{IntentAlerts, []string{"alert", "alerta", "notificac"}},
	{IntentMisplaced, []string{"misplaced", "mal ubicado", "fuera de lugar", "ubicación"}},
}

// AssistantUseCase responde preguntas frecuentes de stock por palabras clave.
// Usa la partición por umbrales del producto (inventory.AlertStatus).
type AssistantUseCase struct {
	products      repository.ProductRepository
	notifications repository.NotificationRepository
}

func NewAssistantUseCase(products repository.ProductRepository, notifications repository.NotificationRepository) *AssistantUseCase {
	return &AssistantUseCase{products: products, notifications: notifications}
}

// DetectIntent clasifica la pregunta; sin coincidencias devuelve IntentHelp.
func DetectIntent(question string) string {
	q := strings.ToLower(question)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.intent
			}
		}
	}
	return IntentHelp
}

// Ask responde la pregunta con datos actuales del catálogo o de las notificaciones.
func (uc *AssistantUseCase) Ask(ctx context.Context, req dto.AssistantRequest) (*dto.AssistantResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, domain.NewValidationError("question", "es requerida")
	}

	intent := DetectIntent(req.Question)
	switch intent {
	case IntentLowStock:
		return uc.productsIn(ctx, intent, inventory.StatusLowStock, "productos por debajo de su stock mínimo")
	case IntentOutOfStock:
		return uc.productsIn(ctx, intent, inventory.StatusOutOfStock, "productos agotados")
	case IntentOverstock:
		return uc.productsIn(ctx, intent, inventory.StatusOverstock, "productos por encima de su stock máximo")
	case IntentAlerts:
		items, err := uc.notifications.ListRecent(ctx, assistantAlertLimit)
		if err != nil {
			return nil, err
		}
		resp := &dto.AssistantResponse{Intent: intent, Notifications: toNotificationResponses(items)}
		if len(items) == 0 {
			resp.Message = "No hay alertas registradas."
		} else {
			resp.Message = fmt.Sprintf("%d alertas recientes.", len(items))
		}
		return resp, nil
	case IntentMisplaced:
		return &dto.AssistantResponse{
			Intent:  intent,
			Message: "La detección de productos mal ubicados se hace con la inspección de imágenes; los defectos aparecen como alertas.",
		}, nil
	}
	return &dto.AssistantResponse{
		Intent:  IntentHelp,
		Message: "Puedo responder sobre stock bajo, productos agotados, sobrestock, alertas y productos mal ubicados.",
	}, nil
}

func (uc *AssistantUseCase) productsIn(ctx context.Context, intent string, status inventory.Status, label string) (*dto.AssistantResponse, error) {
	items, err := uc.products.ListByAlert(ctx, status)
	if err != nil {
		return nil, err
	}
	resp := &dto.AssistantResponse{Intent: intent, Products: make([]dto.ProductResponse, 0, len(items))}
	for _, p := range items {
		resp.Products = append(resp.Products, dto.NewProductResponse(p, false))
	}
	if len(items) == 0 {
		resp.Message = "No hay " + label + "."
	} else {
		resp.Message = fmt.Sprintf("%d %s.", len(items), label)
	}
	return resp, nil
}
