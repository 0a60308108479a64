package memory

import (
	"context"
	"sort"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo bandejas en memoria.
type NotificationRepo struct {
	s *Store
}

func NewNotificationRepository(s *Store) *NotificationRepo {
	return &NotificationRepo{s: s}
}

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}

func (r *NotificationRepo) ListByUser(_ context.Context, userID string) ([]*entity.Notification, error) {
	return r.collect(func(n *entity.Notification) bool { return n.UserID == userID }, 0), nil
}

func (r *NotificationRepo) ListRecent(_ context.Context, limit int) ([]*entity.Notification, error) {
	return r.collect(func(*entity.Notification) bool { return true }, limit), nil
}

func (r *NotificationRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, n := range r.s.notifications {
		if n.ID == id && n.UserID == userID {
			r.s.notifications = append(r.s.notifications[:i], r.s.notifications[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *NotificationRepo) collect(keep func(*entity.Notification) bool, limit int) []*entity.Notification {
	r.s.mu.RLock()
	out := make([]*entity.Notification, 0)
	for _, n := range r.s.notifications {
		if keep(n) {
			cp := *n
			out = append(out, &cp)
		}
	}
	r.s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
