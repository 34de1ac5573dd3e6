package entity

import "time"

// Supplier proveedor de productos.
type Supplier struct {
	ID            string
	OwnerID       string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
