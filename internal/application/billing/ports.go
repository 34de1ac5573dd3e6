package billing

import (
	"context"

	"github.com/jhoicas/donepaid-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye los repos de facturación.
// Si fn retorna error se hace rollback.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		documentRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
