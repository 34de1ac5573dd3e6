package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDocumentRequest body para POST /api/invoices y POST /api/quotes.
type CreateDocumentRequest struct {
	CustomerID string                `json:"customer_id"`
	DueDate    *time.Time            `json:"due_date,omitempty"`
	TaxRate    decimal.Decimal       `json:"tax_rate"` // porcentaje
	Discount   decimal.Decimal       `json:"discount"`
	Notes      string                `json:"notes,omitempty"`
	Items      []DocumentItemRequest `json:"items"`
}

// DocumentItemRequest línea de factura/cotización. Si UnitPrice es cero y hay ProductID se usa el precio del producto.
type DocumentItemRequest struct {
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// UpdateStatusRequest body para PATCH /:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// DocumentItemResponse línea en respuestas.
type DocumentItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// DocumentResponse factura o cotización con detalle.
type DocumentResponse struct {
	ID          string                  `json:"id"`
	Kind        string                  `json:"kind"`
	Number      string                  `json:"number"`
	Status      string                  `json:"status"`
	CustomerID  string                  `json:"customer_id"`
	IssueDate   time.Time               `json:"issue_date"`
	DueDate     *time.Time              `json:"due_date,omitempty"`
	TaxRate     decimal.Decimal         `json:"tax_rate"`
	Discount    decimal.Decimal         `json:"discount"`
	Subtotal    decimal.Decimal         `json:"subtotal"`
	TaxTotal    decimal.Decimal         `json:"tax_total"`
	GrandTotal  decimal.Decimal         `json:"grand_total"`
	Notes       string                  `json:"notes,omitempty"`
	SourceQuote string                  `json:"source_quote_id,omitempty"`
	Items       []*DocumentItemResponse `json:"items,omitempty"`
}
