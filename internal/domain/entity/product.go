package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o servicio vendible.
type Product struct {
	ID          string
	OwnerID     string
	CategoryID  string // vacío si no tiene categoría
	SupplierID  string // vacío si no tiene proveedor
	SKU         string // código único por propietario
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo de compra
	Stock       int
	Unit        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
