package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/usecase"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/memory"
)

func TestNotifications_ListYDeletePropias(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewNotificationRepository(memory.NewStore())
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n1", UserID: "ana", Message: "primera", Type: entity.NotificationDefect, CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n2", UserID: "ana", Message: "segunda", Type: entity.NotificationDefect, CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n3", UserID: "luis", Message: "ajena", Type: entity.NotificationDefect, CreatedAt: base}))
	uc := usecase.NewNotificationUseCase(repo)

	list, err := uc.List(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "n2", list.Items[0].ID, "más recientes primero")

	assert.ErrorIs(t, uc.Delete(ctx, "ana", "n3"), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, "ana", "n1"))
	assert.ErrorIs(t, uc.Delete(ctx, "ana", "n1"), domain.ErrNotFound)

	list, err = uc.List(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	_, err = uc.List(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
