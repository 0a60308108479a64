package repository

import (
	"context"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
)

// UserRepository puerto de usuarios. Las credenciales viven en el servicio de autenticación;
// aquí solo se guarda lo necesario para autorizar y notificar.
type UserRepository interface {
	// Upsert crea o actualiza el usuario por ID. Email duplicado en otro ID -> domain.ErrDuplicate.
	Upsert(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	ListByRoles(ctx context.Context, roles ...string) ([]*entity.User, error)
}
