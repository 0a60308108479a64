package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, now: time.Now}
}

// Upsert valida y guarda el usuario; el rol decide quién recibe alertas de calidad.
func (uc *UserUseCase) Upsert(ctx context.Context, in dto.UpsertUserRequest) (*dto.UserResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, domain.NewValidationError("email", "formato inválido")
	}
	switch in.Role {
	case entity.RoleAdmin, entity.RoleManager, entity.RoleWorker:
	default:
		return nil, domain.NewValidationError("role", "debe ser admin, manager o worker")
	}
	if in.ID == "" {
		in.ID = uuid.New().String()
	} else if _, err := uuid.Parse(in.ID); err != nil {
		return nil, domain.NewValidationError("id", "debe ser un UUID")
	}

	createdAt := uc.now().UTC()
	existing, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		createdAt = existing.CreatedAt
	}

	user := &entity.User{
		ID:        in.ID,
		Email:     in.Email,
		Name:      strings.TrimSpace(in.Name),
		Role:      in.Role,
		CreatedAt: createdAt,
	}
	if err := uc.repo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return entityToUserResponse(user), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
