package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
	"github.com/jhoicas/donepaid-api/pkg/logger"
)

// DocumentUseCase facturas y cotizaciones: creación con numeración consecutiva,
// cambios de estado y conversión de cotización a factura.
type DocumentUseCase struct {
	txRunner BillingTxRunner
	docs     repository.DocumentRepository
	log      *logger.Logger
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(txRunner BillingTxRunner, docs repository.DocumentRepository, log *logger.Logger) *DocumentUseCase {
	return &DocumentUseCase{txRunner: txRunner, docs: docs, log: log.Named("billing")}
}

// Create crea una factura o cotización en borrador. Numeración y persistencia van en la misma transacción.
func (uc *DocumentUseCase) Create(ctx context.Context, ownerID string, kind entity.DocumentKind, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(decimal.NewFromInt(100)) || in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	doc := &entity.Document{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		CustomerID: in.CustomerID,
		Kind:       kind,
		Status:     entity.StatusDraft,
		IssueDate:  now,
		DueDate:    in.DueDate,
		TaxRate:    in.TaxRate,
		Discount:   in.Discount,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := uc.txRunner.RunBilling(ctx, func(
		documentRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error {
		customer, err := customerRepo.GetByID(ctx, ownerID, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		for _, it := range in.Items {
			item, err := buildItem(ctx, productRepo, ownerID, doc.ID, it)
			if err != nil {
				return err
			}
			doc.Items = append(doc.Items, item)
		}
		doc.ComputeTotals()
		return uc.persist(ctx, documentRepo, doc)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("owner_id", ownerID).Str("number", doc.Number).Str("total", doc.GrandTotal.StringFixed(2)).Msg("documento creado")
	return toDocumentResponse(doc), nil
}

// buildItem valida la línea; si trae producto y no trae precio usa el precio del producto.
func buildItem(ctx context.Context, productRepo repository.ProductRepository, ownerID, docID string, in dto.DocumentItemRequest) (*entity.DocumentItem, error) {
	if !in.Quantity.IsPositive() || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.DocumentItem{
		ID:          uuid.New().String(),
		DocumentID:  docID,
		ProductID:   in.ProductID,
		Description: strings.TrimSpace(in.Description),
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
	}
	if in.ProductID != "" {
		product, err := productRepo.GetByID(ctx, ownerID, in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.Price
		}
		if item.Description == "" {
			item.Description = product.Name
		}
	}
	if item.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	return item, nil
}

func (uc *DocumentUseCase) persist(ctx context.Context, documentRepo repository.DocumentRepository, doc *entity.Document) error {
	seq, err := documentRepo.NextSequence(ctx, doc.OwnerID, doc.Kind)
	if err != nil {
		return err
	}
	doc.Number = FormatNumber(doc.Kind, seq)
	return documentRepo.Create(ctx, doc)
}

// FormatNumber número visible del documento: INV-0001, QUO-0042.
func FormatNumber(kind entity.DocumentKind, seq int) string {
	return fmt.Sprintf("%s-%04d", kind.Prefix(), seq)
}

// GetByID obtiene un documento del tipo indicado.
func (uc *DocumentUseCase) GetByID(ctx context.Context, ownerID string, kind entity.DocumentKind, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.load(ctx, ownerID, kind, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// List lista documentos del tipo indicado (sin líneas).
func (uc *DocumentUseCase) List(ctx context.Context, ownerID string, kind entity.DocumentKind, page dto.PageRequest) ([]*dto.DocumentResponse, error) {
	page.DefaultPage()
	list, err := uc.docs.ListByOwner(ctx, ownerID, kind, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDocumentResponse(d))
	}
	return out, nil
}

// UpdateStatus aplica una transición de estado válida para el tipo de documento.
func (uc *DocumentUseCase) UpdateStatus(ctx context.Context, ownerID string, kind entity.DocumentKind, id, status string) (*dto.DocumentResponse, error) {
	doc, err := uc.load(ctx, ownerID, kind, id)
	if err != nil {
		return nil, err
	}
	next := entity.DocumentStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !kind.CanTransition(doc.Status, next) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.docs.UpdateStatus(ctx, ownerID, id, next); err != nil {
		return nil, err
	}
	doc.Status = next
	return toDocumentResponse(doc), nil
}

// Delete elimina un documento; solo se permiten borradores.
func (uc *DocumentUseCase) Delete(ctx context.Context, ownerID string, kind entity.DocumentKind, id string) error {
	doc, err := uc.load(ctx, ownerID, kind, id)
	if err != nil {
		return err
	}
	if doc.Status != entity.StatusDraft {
		return domain.ErrConflict
	}
	return uc.docs.Delete(ctx, ownerID, id)
}

// ConvertQuote genera una factura en borrador a partir de una cotización enviada o aceptada.
// La cotización queda ACCEPTED. Todo en una transacción. Una cotización ya convertida
// devuelve domain.ErrConflict sin consumir otro consecutivo.
func (uc *DocumentUseCase) ConvertQuote(ctx context.Context, ownerID, quoteID string) (*dto.DocumentResponse, error) {
	var invoice *entity.Document
	err := uc.txRunner.RunBilling(ctx, func(
		documentRepo repository.DocumentRepository,
		_ repository.ProductRepository,
		_ repository.CustomerRepository,
	) error {
		quote, err := documentRepo.GetByID(ctx, ownerID, quoteID)
		if err != nil {
			return err
		}
		if quote == nil || quote.Kind != entity.KindQuote {
			return domain.ErrNotFound
		}
		converted, err := documentRepo.GetBySourceQuote(ctx, ownerID, quote.ID)
		if err != nil {
			return err
		}
		if converted != nil {
			return domain.ErrConflict
		}
		switch quote.Status {
		case entity.StatusSent:
			if err := documentRepo.UpdateStatus(ctx, ownerID, quote.ID, entity.StatusAccepted); err != nil {
				return err
			}
		case entity.StatusAccepted:
		default:
			return domain.ErrInvalidTransition
		}
		invoice = invoiceFromQuote(quote, time.Now())
		if err := uc.persist(ctx, documentRepo, invoice); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				// otra conversión concurrente ganó el índice único
				return domain.ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("owner_id", ownerID).Str("quote_id", quoteID).Str("number", invoice.Number).Msg("cotización convertida en factura")
	return toDocumentResponse(invoice), nil
}

func invoiceFromQuote(quote *entity.Document, now time.Time) *entity.Document {
	inv := &entity.Document{
		ID:          uuid.New().String(),
		OwnerID:     quote.OwnerID,
		CustomerID:  quote.CustomerID,
		Kind:        entity.KindInvoice,
		Status:      entity.StatusDraft,
		IssueDate:   now,
		DueDate:     quote.DueDate,
		TaxRate:     quote.TaxRate,
		Discount:    quote.Discount,
		Notes:       quote.Notes,
		SourceQuote: quote.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, it := range quote.Items {
		inv.Items = append(inv.Items, &entity.DocumentItem{
			ID:          uuid.New().String(),
			DocumentID:  inv.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	inv.ComputeTotals()
	return inv
}

func (uc *DocumentUseCase) load(ctx context.Context, ownerID string, kind entity.DocumentKind, id string) (*entity.Document, error) {
	doc, err := uc.docs.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Kind != kind {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	out := &dto.DocumentResponse{
		ID:          d.ID,
		Kind:        string(d.Kind),
		Number:      d.Number,
		Status:      string(d.Status),
		CustomerID:  d.CustomerID,
		IssueDate:   d.IssueDate,
		DueDate:     d.DueDate,
		TaxRate:     d.TaxRate,
		Discount:    d.Discount,
		Subtotal:    d.Subtotal,
		TaxTotal:    d.TaxTotal,
		GrandTotal:  d.GrandTotal,
		Notes:       d.Notes,
		SourceQuote: d.SourceQuote,
	}
	for _, it := range d.Items {
		out.Items = append(out.Items, &dto.DocumentItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return out
}
