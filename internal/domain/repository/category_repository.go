package repository

import (
	"context"

	"github.com/jhoicas/donepaid-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, ownerID, slug string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Category, error)
	Delete(ctx context.Context, ownerID, id string) error
}
