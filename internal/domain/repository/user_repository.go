package repository

import (
	"context"

	"github.com/jhoicas/donepaid-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateFields aplica una actualización parcial atómica y devuelve el registro resultante.
	// Retorna domain.ErrUserNotFound si el id no existe.
	UpdateFields(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, int, error)
}
