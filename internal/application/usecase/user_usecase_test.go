package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/usecase"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/infrastructure/memory"
)

func TestUserUpsert_CreaYActualiza(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewUserUseCase(memory.NewUserRepository(memory.NewStore()))

	created, err := uc.Upsert(ctx, dto.UpsertUserRequest{Email: "ana@example.com", Role: "Admin"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "admin", created.Role)

	updated, err := uc.Upsert(ctx, dto.UpsertUserRequest{ID: created.ID, Email: "ana@example.com", Role: "worker"})
	require.NoError(t, err)
	assert.Equal(t, "worker", updated.Role)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "worker", got.Role)
}

func TestUserUpsert_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewUserUseCase(memory.NewUserRepository(memory.NewStore()))

	cases := []struct {
		name  string
		in    dto.UpsertUserRequest
		field string
	}{
		{"email inválido", dto.UpsertUserRequest{Email: "no-es-email", Role: "admin"}, "email"},
		{"rol desconocido", dto.UpsertUserRequest{Email: "a@example.com", Role: "vendedor"}, "role"},
		{"id no uuid", dto.UpsertUserRequest{ID: "123", Email: "a@example.com", Role: "admin"}, "id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Upsert(ctx, tc.in)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestUserUpsert_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewUserUseCase(memory.NewUserRepository(memory.NewStore()))

	_, err := uc.Upsert(ctx, dto.UpsertUserRequest{Email: "ana@example.com", Role: "admin"})
	require.NoError(t, err)
	_, err = uc.Upsert(ctx, dto.UpsertUserRequest{Email: "ANA@example.com", Role: "manager"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestUserGetByID_NoExiste(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.NewUserRepository(memory.NewStore()))
	_, err := uc.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
