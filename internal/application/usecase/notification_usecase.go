package usecase

import (
	"context"
	"strings"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

// NotificationUseCase bandeja del usuario autenticado.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List notificaciones del usuario, más recientes primero.
func (uc *NotificationUseCase) List(ctx context.Context, userID string) (*dto.NotificationListResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthorized
	}
	items, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationListResponse{Items: toNotificationResponses(items)}, nil
}

// Delete elimina una notificación propia; ajena o inexistente es ErrNotFound.
func (uc *NotificationUseCase) Delete(ctx context.Context, userID, id string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrUnauthorized
	}
	return uc.repo.Delete(ctx, userID, id)
}

func toNotificationResponses(items []*entity.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
