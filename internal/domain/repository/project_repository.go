package repository

import (
	"context"

	"github.com/jhoicas/donepaid-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para proyectos, hitos y tareas.
type ProjectRepository interface {
	// Create persiste el proyecto con sus hitos y tareas.
	Create(ctx context.Context, project *entity.Project) error
	// GetByID carga el proyecto completo (hitos y tareas ordenados por posición).
	GetByID(ctx context.Context, ownerID, id string) (*entity.Project, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Project, error)
	UpdateStatus(ctx context.Context, projectID string, status entity.ProjectStatus) error
	UpdateTaskStatus(ctx context.Context, projectID, taskID string, status entity.TaskStatus) error
	Delete(ctx context.Context, ownerID, id string) error
}
