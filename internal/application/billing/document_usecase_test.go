package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
	"github.com/jhoicas/donepaid-api/pkg/logger"
)

// ────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ────────────────────────────────────────────────────────────────────────────

type memDocs struct {
	docs map[string]*entity.Document
	seq  map[string]int
}

func newMemDocs() *memDocs {
	return &memDocs{docs: map[string]*entity.Document{}, seq: map[string]int{}}
}

func (m *memDocs) Create(_ context.Context, d *entity.Document) error {
	if d.SourceQuote != "" {
		for _, other := range m.docs {
			if other.SourceQuote == d.SourceQuote {
				return domain.ErrDuplicate
			}
		}
	}
	m.docs[d.ID] = d
	return nil
}

func (m *memDocs) GetByID(_ context.Context, ownerID, id string) (*entity.Document, error) {
	d, ok := m.docs[id]
	if !ok || d.OwnerID != ownerID {
		return nil, nil
	}
	return d, nil
}

func (m *memDocs) ListByOwner(_ context.Context, ownerID string, kind entity.DocumentKind, _, _ int) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range m.docs {
		if d.OwnerID == ownerID && d.Kind == kind {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDocs) GetBySourceQuote(_ context.Context, ownerID, quoteID string) (*entity.Document, error) {
	for _, d := range m.docs {
		if d.OwnerID == ownerID && d.SourceQuote == quoteID {
			return d, nil
		}
	}
	return nil, nil
}

func (m *memDocs) UpdateStatus(_ context.Context, ownerID, id string, status entity.DocumentStatus) error {
	d, ok := m.docs[id]
	if !ok || d.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	d.Status = status
	return nil
}

func (m *memDocs) Delete(_ context.Context, _, id string) error {
	delete(m.docs, id)
	return nil
}

func (m *memDocs) NextSequence(_ context.Context, ownerID string, kind entity.DocumentKind) (int, error) {
	key := ownerID + "|" + string(kind)
	m.seq[key]++
	return m.seq[key], nil
}

type memProducts struct{ items map[string]*entity.Product }

func (m *memProducts) Create(context.Context, *entity.Product) error { return nil }
func (m *memProducts) GetByID(_ context.Context, ownerID, id string) (*entity.Product, error) {
	p, ok := m.items[id]
	if !ok || p.OwnerID != ownerID {
		return nil, nil
	}
	return p, nil
}
func (m *memProducts) Update(context.Context, *entity.Product) error { return nil }
func (m *memProducts) ListByOwner(context.Context, string, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (m *memProducts) Delete(context.Context, string, string) error { return nil }

type memCustomers struct{ items map[string]*entity.Customer }

func (m *memCustomers) Create(context.Context, *entity.Customer) error { return nil }
func (m *memCustomers) GetByID(_ context.Context, ownerID, id string) (*entity.Customer, error) {
	c, ok := m.items[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return c, nil
}
func (m *memCustomers) ListByOwner(context.Context, string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (m *memCustomers) Update(context.Context, *entity.Customer) error { return nil }
func (m *memCustomers) Delete(context.Context, string, string) error   { return nil }

type fakeTx struct {
	docs      repository.DocumentRepository
	products  *memProducts
	customers *memCustomers
}

func (f *fakeTx) RunBilling(_ context.Context, fn func(repository.DocumentRepository, repository.ProductRepository, repository.CustomerRepository) error) error {
	return fn(f.docs, f.products, f.customers)
}

const owner = "owner-1"

func newDocumentFixture() (*DocumentUseCase, *memDocs) {
	docs := newMemDocs()
	tx := &fakeTx{
		docs: docs,
		products: &memProducts{items: map[string]*entity.Product{
			"p1": {ID: "p1", OwnerID: owner, Name: "Diseño de logo", Price: decimal.RequireFromString("250.00")},
			"p9": {ID: "p9", OwnerID: "otro", Name: "Ajeno", Price: decimal.NewFromInt(1)},
		}},
		customers: &memCustomers{items: map[string]*entity.Customer{
			"c1": {ID: "c1", OwnerID: owner, Name: "Acme"},
		}},
	}
	return NewDocumentUseCase(tx, docs, logger.Nop()), docs
}

func invoiceRequest() dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		CustomerID: "c1",
		TaxRate:    decimal.NewFromInt(19),
		Discount:   decimal.NewFromInt(50),
		Items: []dto.DocumentItemRequest{
			{ProductID: "p1", Quantity: decimal.NewFromInt(2)},
			{Description: "Horas extra", Quantity: decimal.RequireFromString("1.5"), UnitPrice: decimal.NewFromInt(100)},
		},
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────────────────────────────────

func TestDocument_Create_CalculaTotalesYNumera(t *testing.T) {
	uc, _ := newDocumentFixture()

	out, err := uc.Create(context.Background(), owner, entity.KindInvoice, invoiceRequest())
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", out.Number)
	assert.Equal(t, "DRAFT", out.Status)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Diseño de logo", out.Items[0].Description)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.NewFromInt(250)), "precio tomado del producto")
	// subtotal 500 + 150 = 650; base 600; IVA 114; total 714
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(650)))
	assert.True(t, out.TaxTotal.Equal(decimal.NewFromInt(114)))
	assert.True(t, out.GrandTotal.Equal(decimal.NewFromInt(714)))

	second, err := uc.Create(context.Background(), owner, entity.KindInvoice, invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", second.Number)

	quote, err := uc.Create(context.Background(), owner, entity.KindQuote, invoiceRequest())
	require.NoError(t, err)
	assert.Equal(t, "QUO-0001", quote.Number, "cada tipo tiene su consecutivo")
}

func TestDocument_Create_Validaciones(t *testing.T) {
	uc, _ := newDocumentFixture()
	ctx := context.Background()

	req := invoiceRequest()
	req.Items = nil
	_, err := uc.Create(ctx, owner, entity.KindInvoice, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = invoiceRequest()
	req.CustomerID = "desconocido"
	_, err = uc.Create(ctx, owner, entity.KindInvoice, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = invoiceRequest()
	req.Items[0].ProductID = "p9"
	_, err = uc.Create(ctx, owner, entity.KindInvoice, req)
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto de otro propietario")

	req = invoiceRequest()
	req.Items[1].Quantity = decimal.Zero
	_, err = uc.Create(ctx, owner, entity.KindInvoice, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = invoiceRequest()
	req.TaxRate = decimal.NewFromInt(101)
	_, err = uc.Create(ctx, owner, entity.KindInvoice, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ────────────────────────────────────────────────────────────────────────────
// Estados y conversión
// ────────────────────────────────────────────────────────────────────────────

func TestDocument_UpdateStatus(t *testing.T) {
	uc, _ := newDocumentFixture()
	ctx := context.Background()
	inv, err := uc.Create(ctx, owner, entity.KindInvoice, invoiceRequest())
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, owner, entity.KindInvoice, inv.ID, "paid")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "DRAFT no salta a PAID")

	out, err := uc.UpdateStatus(ctx, owner, entity.KindInvoice, inv.ID, "sent")
	require.NoError(t, err)
	assert.Equal(t, "SENT", out.Status)

	out, err = uc.UpdateStatus(ctx, owner, entity.KindInvoice, inv.ID, "PAID")
	require.NoError(t, err)
	assert.Equal(t, "PAID", out.Status)

	_, err = uc.UpdateStatus(ctx, owner, entity.KindQuote, inv.ID, "SENT")
	assert.ErrorIs(t, err, domain.ErrNotFound, "una factura no se resuelve como cotización")

	assert.ErrorIs(t, uc.Delete(ctx, owner, entity.KindInvoice, inv.ID), domain.ErrConflict)
}

func TestDocument_ConvertQuote(t *testing.T) {
	uc, docs := newDocumentFixture()
	ctx := context.Background()
	quote, err := uc.Create(ctx, owner, entity.KindQuote, invoiceRequest())
	require.NoError(t, err)

	_, err = uc.ConvertQuote(ctx, owner, quote.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "un borrador no se convierte")

	_, err = uc.UpdateStatus(ctx, owner, entity.KindQuote, quote.ID, "SENT")
	require.NoError(t, err)

	inv, err := uc.ConvertQuote(ctx, owner, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, "INVOICE", inv.Kind)
	assert.Equal(t, "INV-0001", inv.Number)
	assert.Equal(t, quote.ID, inv.SourceQuote)
	assert.True(t, inv.GrandTotal.Equal(quote.GrandTotal))
	assert.Equal(t, entity.StatusAccepted, docs.docs[quote.ID].Status)

	// reintentar no duplica la factura ni consume otro consecutivo
	_, err = uc.ConvertQuote(ctx, owner, quote.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	invoices, err := docs.ListByOwner(ctx, owner, entity.KindInvoice, 0, 0)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)
	assert.Equal(t, 1, docs.seq[owner+"|"+string(entity.KindInvoice)])

	_, err = uc.ConvertQuote(ctx, "otro", quote.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// staleDocs no ve la factura ya convertida, como una tx concurrente que aún no la lee.
type staleDocs struct{ *memDocs }

func (staleDocs) GetBySourceQuote(context.Context, string, string) (*entity.Document, error) {
	return nil, nil
}

func TestDocument_ConvertQuoteConcurrenteChocaConElIndice(t *testing.T) {
	uc, docs := newDocumentFixture()
	ctx := context.Background()
	quote, err := uc.Create(ctx, owner, entity.KindQuote, invoiceRequest())
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, owner, entity.KindQuote, quote.ID, "SENT")
	require.NoError(t, err)
	_, err = uc.ConvertQuote(ctx, owner, quote.ID)
	require.NoError(t, err)

	uc.txRunner.(*fakeTx).docs = staleDocs{docs}
	_, err = uc.ConvertQuote(ctx, owner, quote.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV-0007", FormatNumber(entity.KindInvoice, 7))
	assert.Equal(t, "QUO-12345", FormatNumber(entity.KindQuote, 12345))
}
