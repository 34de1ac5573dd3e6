package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos.
// Categoría y proveedor, si se informan, deben pertenecer al mismo propietario.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, suppliers repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, suppliers: suppliers}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, ownerID string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(ctx, ownerID, in); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		CreatedAt: now,
	}
	applyProduct(p, in, now)
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List lista productos, opcionalmente filtrados por categoría.
func (uc *ProductUseCase) List(ctx context.Context, ownerID, categoryID string, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOwner(ctx, ownerID, categoryID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update reemplaza los datos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, ownerID, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.validate(ctx, ownerID, in); err != nil {
		return nil, err
	}
	applyProduct(p, in, time.Now())
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.repo.Delete(ctx, ownerID, id)
}

func (uc *ProductUseCase) validate(ctx context.Context, ownerID string, in dto.ProductRequest) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.SKU) == "" {
		return domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() || in.Stock < 0 {
		return domain.ErrInvalidInput
	}
	if in.CategoryID != "" {
		c, err := uc.categories.GetByID(ctx, ownerID, in.CategoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
	}
	if in.SupplierID != "" {
		s, err := uc.suppliers.GetByID(ctx, ownerID, in.SupplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func applyProduct(p *entity.Product, in dto.ProductRequest, now time.Time) {
	p.Name = strings.TrimSpace(in.Name)
	p.SKU = strings.ToUpper(strings.TrimSpace(in.SKU))
	p.Description = in.Description
	p.CategoryID = in.CategoryID
	p.SupplierID = in.SupplierID
	p.Price = in.Price
	p.Cost = in.Cost
	p.Stock = in.Stock
	p.Unit = in.Unit
	if p.Unit == "" {
		p.Unit = "unit"
	}
	p.UpdatedAt = now
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		Unit:        p.Unit,
		CreatedAt:   p.CreatedAt,
	}
}
