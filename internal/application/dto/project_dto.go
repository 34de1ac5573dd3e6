package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest body para POST /api/projects (envío de proyecto).
type CreateProjectRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	CustomerID  string             `json:"customer_id,omitempty"`
	Budget      decimal.Decimal    `json:"budget"`
	StartDate   *time.Time         `json:"start_date,omitempty"`
	EndDate     *time.Time         `json:"end_date,omitempty"`
	Milestones  []MilestoneRequest `json:"milestones"`
}

// MilestoneRequest hito con sus tareas.
type MilestoneRequest struct {
	Name    string     `json:"name"`
	DueDate *time.Time `json:"due_date,omitempty"`
	Tasks   []string   `json:"tasks"`
}

// TaskResponse tarea en respuestas.
type TaskResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// MilestoneResponse hito con progreso calculado.
type MilestoneResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	Progress  int             `json:"progress"`
	Completed bool            `json:"completed"`
	Tasks     []*TaskResponse `json:"tasks"`
}

// ProjectResponse proyecto con progreso calculado.
type ProjectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	CustomerID  string               `json:"customer_id,omitempty"`
	Budget      decimal.Decimal      `json:"budget"`
	Status      string               `json:"status"`
	Progress    int                  `json:"progress"`
	StartDate   *time.Time           `json:"start_date,omitempty"`
	EndDate     *time.Time           `json:"end_date,omitempty"`
	Milestones  []*MilestoneResponse `json:"milestones,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// DashboardResponse vista general del dashboard.
type DashboardResponse struct {
	Customers        int             `json:"customers"`
	Products         int             `json:"products"`
	Invoices         int             `json:"invoices"`
	Quotes           int             `json:"quotes"`
	Projects         int             `json:"projects"`
	PaidTotal        decimal.Decimal `json:"paid_total"`
	OutstandingTotal decimal.Decimal `json:"outstanding_total"`
	// RecentInvoices últimas facturas emitidas (sin líneas).
	RecentInvoices []*DocumentResponse `json:"recent_invoices"`
	DateLabel      string              `json:"date_label"`
}
