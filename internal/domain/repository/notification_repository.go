package repository

import (
	"context"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
)

// NotificationRepository bandeja append-only por usuario.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ListByUser más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error)
	// ListRecent todas las bandejas, más recientes primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.Notification, error)
	// Delete devuelve domain.ErrNotFound si la notificación no es del usuario.
	Delete(ctx context.Context, userID, id string) error
}
