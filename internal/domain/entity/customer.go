package entity

import "time"

// Customer representa un cliente del negocio (facturación).
type Customer struct {
	ID        string
	OwnerID   string
	Name      string
	TaxID     string // NIT, RUT o documento fiscal
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
