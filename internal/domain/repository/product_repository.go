package repository

import (
	"context"

	"github.com/jhoicas/donepaid-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByOwner(ctx context.Context, ownerID, categoryID string, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, ownerID, id string) error
}
