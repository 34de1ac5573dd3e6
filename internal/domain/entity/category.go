package entity

import "time"

// Category representa una categoría de productos.
type Category struct {
	ID          string
	OwnerID     string
	Title       string
	Slug        string // único por propietario, derivado del título
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
