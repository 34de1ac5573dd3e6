package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus estado de un proyecto enviado.
type ProjectStatus string

const (
	ProjectPending   ProjectStatus = "PENDING"
	ProjectOngoing   ProjectStatus = "ONGOING"
	ProjectCompleted ProjectStatus = "COMPLETED"
)

// TaskStatus estado de una tarea.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// ParseTaskStatus convierte un string en TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case TaskTodo, TaskInProgress, TaskDone:
		return TaskStatus(s), true
	}
	return "", false
}

// Project proyecto con hitos y tareas.
type Project struct {
	ID          string
	OwnerID     string
	CustomerID  string // opcional
	Name        string
	Description string
	Budget      decimal.Decimal
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Milestones  []*Milestone
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Milestone hito dentro de un proyecto.
type Milestone struct {
	ID        string
	ProjectID string
	Name      string
	DueDate   *time.Time
	Position  int
	Tasks     []*Task
}

// Task tarea dentro de un hito.
type Task struct {
	ID          string
	MilestoneID string
	Title       string
	Status      TaskStatus
	Position    int
}
