package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, owner_id, category_id, supplier_id, sku, name, description, price, cost, stock, unit, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU repetido → ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OwnerID, nullIfEmpty(p.CategoryID), nullIfEmpty(p.SupplierID), p.SKU, p.Name, p.Description,
		p.Price, p.Cost, p.Stock, p.Unit, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del propietario.
func (r *ProductRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND owner_id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza el producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $3, supplier_id = $4, sku = $5, name = $6, description = $7,
			price = $8, cost = $9, stock = $10, unit = $11, updated_at = $12
		WHERE id = $1 AND owner_id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.OwnerID, nullIfEmpty(p.CategoryID), nullIfEmpty(p.SupplierID), p.SKU, p.Name, p.Description,
		p.Price, p.Cost, p.Stock, p.Unit, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOwner lista productos; categoryID vacío no filtra.
func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID, categoryID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE owner_id = $1 AND ($2::uuid IS NULL OR category_id = $2::uuid)
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, ownerID, nullIfEmpty(categoryID), limit, offset)
	if err != nil {
		if isInvalidText(err) {
			return nil, domain.ErrInvalidInput
		}
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto; las líneas de documentos conservan su descripción.
func (r *ProductRepo) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned(ctx, r.q, "products", ownerID, id)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p          entity.Product
		categoryID *string
		supplierID *string
	)
	if err := row.Scan(&p.ID, &p.OwnerID, &categoryID, &supplierID, &p.SKU, &p.Name, &p.Description,
		&p.Price, &p.Cost, &p.Stock, &p.Unit, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CategoryID = derefString(categoryID)
	p.SupplierID = derefString(supplierID)
	return &p, nil
}
