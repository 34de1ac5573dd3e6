// Package analytics contiene el caso de uso de la vista general del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
)

const dashboardRecentInvoices = 5 // facturas en el widget de recientes

// DashboardUseCase genera el resumen del propietario.
//
// Fuente de datos: DashboardRepository (consultas read-only) y DocumentRepository para recientes.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
	documentRepo  repository.DocumentRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository, documentRepo repository.DocumentRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo, documentRepo: documentRepo, now: time.Now}
}

// GetSummary construye el DashboardResponse.
//
// Dos llamadas en paralelo:
//  1. Summary(owner)                  → conteos y totales
//  2. ListByOwner(owner, INVOICE, 5)  → facturas recientes
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ownerID string) (*dto.DashboardResponse, error) {
	type summaryResult struct {
		summary *repository.DashboardSummary
		err     error
	}
	type recentResult struct {
		docs []*entity.Document
		err  error
	}

	summaryCh := make(chan summaryResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		s, err := uc.dashboardRepo.Summary(ctx, ownerID)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		docs, err := uc.documentRepo.ListByOwner(ctx, ownerID, entity.KindInvoice, dashboardRecentInvoices, 0)
		recentCh <- recentResult{docs, err}
	}()

	sum := <-summaryCh
	recent := <-recentCh

	if sum.err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", sum.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: facturas recientes: %w", recent.err)
	}

	out := &dto.DashboardResponse{
		RecentInvoices: make([]*dto.DocumentResponse, 0, len(recent.docs)),
		DateLabel:      monthLabel(uc.now()),
	}
	if s := sum.summary; s != nil {
		out.Customers = s.Customers
		out.Products = s.Products
		out.Invoices = s.Invoices
		out.Quotes = s.Quotes
		out.Projects = s.Projects
		out.PaidTotal = s.PaidTotal.Round(2)
		out.OutstandingTotal = s.OutstandingTotal.Round(2)
	}
	for _, d := range recent.docs {
		out.RecentInvoices = append(out.RecentInvoices, &dto.DocumentResponse{
			ID:         d.ID,
			Kind:       string(d.Kind),
			Number:     d.Number,
			Status:     string(d.Status),
			CustomerID: d.CustomerID,
			IssueDate:  d.IssueDate,
			DueDate:    d.DueDate,
			GrandTotal: d.GrandTotal,
		})
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
