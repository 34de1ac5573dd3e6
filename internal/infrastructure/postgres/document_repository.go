package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, owner_id, customer_id, kind, number, status, issue_date, due_date, tax_rate, discount,
	subtotal, tax_total, grand_total, notes, source_quote_id, created_at, updated_at`

// DocumentRepo facturas y cotizaciones con sus líneas (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create inserta cabecera y líneas. Llamar dentro de una tx para que sea atómico.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.OwnerID, d.CustomerID, string(d.Kind), d.Number, string(d.Status), d.IssueDate, d.DueDate,
		d.TaxRate, d.Discount, d.Subtotal, d.TaxTotal, d.GrandTotal, d.Notes, nullIfEmpty(d.SourceQuote),
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert document: %w", err)
	}

	itemQuery := `
		INSERT INTO document_items (id, document_id, product_id, position, description, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, it := range d.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, d.ID, nullIfEmpty(it.ProductID), i, it.Description, it.Quantity, it.UnitPrice, it.Total,
		); err != nil {
			return fmt.Errorf("insert document item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el documento con sus líneas.
func (r *DocumentRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND owner_id = $2`
	d, err := scanDocument(r.q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, product_id, description, quantity, unit_price, total
		FROM document_items WHERE document_id = $1 ORDER BY position`, d.ID)
	if err != nil {
		return nil, fmt.Errorf("get document items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			it        entity.DocumentItem
			productID *string
		)
		if err := rows.Scan(&it.ID, &it.DocumentID, &productID, &it.Description, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		it.ProductID = derefString(productID)
		d.Items = append(d.Items, &it)
	}
	return d, rows.Err()
}

// ListByOwner lista cabeceras del tipo indicado, más recientes primero.
func (r *DocumentRepo) ListByOwner(ctx context.Context, ownerID string, kind entity.DocumentKind, limit, offset int) ([]*entity.Document, error) {
	query := `
		SELECT ` + documentColumns + ` FROM documents
		WHERE owner_id = $1 AND kind = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, ownerID, string(kind), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// GetBySourceQuote cabecera de la factura convertida desde quoteID (sin líneas).
func (r *DocumentRepo) GetBySourceQuote(ctx context.Context, ownerID, quoteID string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE source_quote_id = $1 AND owner_id = $2`
	d, err := scanDocument(r.q.QueryRow(ctx, query, quoteID, ownerID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document by source quote: %w", err)
	}
	return d, nil
}

// UpdateStatus cambia el estado del documento.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, ownerID, id string, status entity.DocumentStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE documents SET status = $3, updated_at = now() WHERE id = $1 AND owner_id = $2`,
		id, ownerID, string(status))
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el documento (las líneas caen en cascada).
func (r *DocumentRepo) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned(ctx, r.q, "documents", ownerID, id)
}

// NextSequence incrementa y devuelve el consecutivo por propietario y tipo. El UPSERT bloquea la fila
// hasta el fin de la tx, de modo que dos documentos concurrentes no comparten número.
func (r *DocumentRepo) NextSequence(ctx context.Context, ownerID string, kind entity.DocumentKind) (int, error) {
	var next int
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_sequences (owner_id, kind, last_value) VALUES ($1, $2, 1)
		ON CONFLICT (owner_id, kind) DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`, ownerID, string(kind)).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next document sequence: %w", err)
	}
	return next, nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var (
		d           entity.Document
		sourceQuote *string
	)
	if err := row.Scan(&d.ID, &d.OwnerID, &d.CustomerID, &d.Kind, &d.Number, &d.Status, &d.IssueDate, &d.DueDate,
		&d.TaxRate, &d.Discount, &d.Subtotal, &d.TaxTotal, &d.GrandTotal, &d.Notes, &sourceQuote,
		&d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.SourceQuote = derefString(sourceQuote)
	return &d, nil
}
