package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// DashboardSummary métricas agregadas del propietario para la vista general.
type DashboardSummary struct {
	Customers        int
	Products         int
	Invoices         int
	Quotes           int
	Projects         int
	PaidTotal        decimal.Decimal
	OutstandingTotal decimal.Decimal
}

// DashboardRepository consultas agregadas (solo lectura).
type DashboardRepository interface {
	Summary(ctx context.Context, ownerID string) (*DashboardSummary, error)
}
