package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distingue facturas de cotizaciones.
type DocumentKind string

const (
	KindInvoice DocumentKind = "INVOICE"
	KindQuote   DocumentKind = "QUOTE"
)

// Prefix prefijo de numeración por tipo de documento.
func (k DocumentKind) Prefix() string {
	if k == KindQuote {
		return "QUO"
	}
	return "INV"
}

// DocumentStatus estado de una factura o cotización.
type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "DRAFT"
	StatusSent     DocumentStatus = "SENT"
	StatusPaid     DocumentStatus = "PAID"     // solo facturas
	StatusAccepted DocumentStatus = "ACCEPTED" // solo cotizaciones
	StatusRejected DocumentStatus = "REJECTED" // solo cotizaciones
)

// documentTransitions transiciones válidas por tipo de documento.
var documentTransitions = map[DocumentKind]map[DocumentStatus][]DocumentStatus{
	KindInvoice: {
		StatusDraft: {StatusSent},
		StatusSent:  {StatusPaid},
	},
	KindQuote: {
		StatusDraft: {StatusSent},
		StatusSent:  {StatusAccepted, StatusRejected},
	},
}

// CanTransition informa si el documento puede pasar de from a to.
func (k DocumentKind) CanTransition(from, to DocumentStatus) bool {
	for _, s := range documentTransitions[k][from] {
		if s == to {
			return true
		}
	}
	return false
}

// Document cabecera de una factura o cotización.
type Document struct {
	ID          string
	OwnerID     string
	CustomerID  string
	Kind        DocumentKind
	Number      string // INV-0001, QUO-0001
	Status      DocumentStatus
	IssueDate   time.Time
	DueDate     *time.Time
	TaxRate     decimal.Decimal // porcentaje, ej. 19 = 19%
	Discount    decimal.Decimal // monto absoluto
	Subtotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	GrandTotal  decimal.Decimal
	Notes       string
	SourceQuote string // ID de la cotización de origen (solo facturas convertidas)
	Items       []*DocumentItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocumentItem línea de detalle de una factura o cotización.
type DocumentItem struct {
	ID          string
	DocumentID  string
	ProductID   string // opcional
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals recalcula el total de cada línea y los totales del documento.
// El impuesto se aplica sobre (subtotal - descuento); el descuento nunca deja la base en negativo.
func (d *Document) ComputeTotals() {
	subtotal := decimal.Zero
	for _, it := range d.Items {
		it.Total = it.Quantity.Mul(it.UnitPrice).Round(2)
		subtotal = subtotal.Add(it.Total)
	}
	base := subtotal.Sub(d.Discount)
	if base.IsNegative() {
		base = decimal.Zero
	}
	d.Subtotal = subtotal
	d.TaxTotal = base.Mul(d.TaxRate).Div(hundred).Round(2)
	d.GrandTotal = base.Add(d.TaxTotal)
}
