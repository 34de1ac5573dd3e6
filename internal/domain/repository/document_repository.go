package repository

import (
	"context"

	"github.com/jhoicas/donepaid-api/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para facturas y cotizaciones con sus líneas.
type DocumentRepository interface {
	// Create persiste cabecera y líneas.
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Document, error)
	ListByOwner(ctx context.Context, ownerID string, kind entity.DocumentKind, limit, offset int) ([]*entity.Document, error)
	// GetBySourceQuote devuelve la factura generada desde la cotización, o nil si no existe.
	GetBySourceQuote(ctx context.Context, ownerID, quoteID string) (*entity.Document, error)
	UpdateStatus(ctx context.Context, ownerID, id string, status entity.DocumentStatus) error
	Delete(ctx context.Context, ownerID, id string) error
	// NextSequence devuelve el siguiente consecutivo del propietario para el tipo de documento.
	NextSequence(ctx context.Context, ownerID string, kind entity.DocumentKind) (int, error)
}
