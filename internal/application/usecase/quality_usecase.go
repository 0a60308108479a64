package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

const maxInspectionImageBytes = 10 << 20

// QualityCheckUseCase consulta la inspección visual externa y, si el veredicto es NOT_OK,
// alerta a los usuarios admin y manager. Nunca toca el libro de movimientos.
type QualityCheckUseCase struct {
	inspector     ports.InspectionService
	users         repository.UserRepository
	notifications repository.NotificationRepository
	timeout       time.Duration
	now           func() time.Time
}

// NewQualityCheckUseCase construye el caso de uso; timeout <= 0 usa 10 s.
func NewQualityCheckUseCase(
	inspector ports.InspectionService,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	timeout time.Duration,
) *QualityCheckUseCase {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &QualityCheckUseCase{
		inspector:     inspector,
		users:         users,
		notifications: notifications,
		timeout:       timeout,
		now:           time.Now,
	}
}

// Check inspecciona la imagen y reparte la alerta si corresponde.
func (uc *QualityCheckUseCase) Check(ctx context.Context, req dto.QualityCheckRequest) (*dto.QualityCheckResponse, error) {
	if len(req.Image) == 0 {
		return nil, domain.NewValidationError("image", "es requerida")
	}
	if len(req.Image) > maxInspectionImageBytes {
		return nil, domain.NewValidationError("image", "supera el tamaño máximo de 10 MB")
	}

	inspectCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	verdict, err := uc.inspector.Inspect(inspectCtx, req.Filename, req.Image)
	if err != nil {
		return nil, fmt.Errorf("inspección: %w", err)
	}

	out := &dto.QualityCheckResponse{Status: verdict.Status, Message: verdict.Message}
	if !verdict.Defective() {
		return out, nil
	}

	recipients, err := uc.users.ListByRoles(ctx, entity.RoleAdmin, entity.RoleManager)
	if err != nil {
		return nil, err
	}
	message := defectMessage(req.SKU, verdict.Message)
	now := uc.now()
	for _, u := range recipients {
		n := &entity.Notification{
			ID:        uuid.New().String(),
			UserID:    u.ID,
			Message:   message,
			Type:      entity.NotificationDefect,
			CreatedAt: now,
		}
		if err := uc.notifications.Create(ctx, n); err != nil {
			return nil, err
		}
		out.Notified++
	}
	return out, nil
}

func defectMessage(sku, detail string) string {
	msg := "Producto defectuoso detectado"
	if sku = strings.TrimSpace(sku); sku != "" {
		msg += " (SKU " + sku + ")"
	}
	if detail = strings.TrimSpace(detail); detail != "" {
		msg += ": " + detail
	}
	return msg
}
