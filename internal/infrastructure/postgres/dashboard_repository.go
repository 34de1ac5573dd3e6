package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/donepaid-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas read-only para la vista general.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// Summary conteos por entidad y totales de facturas pagadas / pendientes (enviadas sin pagar).
func (r *DashboardRepo) Summary(ctx context.Context, ownerID string) (*repository.DashboardSummary, error) {
	query := `
		SELECT
			(SELECT count(*) FROM customers WHERE owner_id = $1),
			(SELECT count(*) FROM products  WHERE owner_id = $1),
			(SELECT count(*) FROM documents WHERE owner_id = $1 AND kind = 'INVOICE'),
			(SELECT count(*) FROM documents WHERE owner_id = $1 AND kind = 'QUOTE'),
			(SELECT count(*) FROM projects  WHERE owner_id = $1),
			COALESCE((SELECT sum(grand_total) FROM documents
				WHERE owner_id = $1 AND kind = 'INVOICE' AND status = 'PAID'), 0),
			COALESCE((SELECT sum(grand_total) FROM documents
				WHERE owner_id = $1 AND kind = 'INVOICE' AND status = 'SENT'), 0)`
	var s repository.DashboardSummary
	if err := r.q.QueryRow(ctx, query, ownerID).Scan(
		&s.Customers, &s.Products, &s.Invoices, &s.Quotes, &s.Projects, &s.PaidTotal, &s.OutstandingTotal,
	); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return &s, nil
}
