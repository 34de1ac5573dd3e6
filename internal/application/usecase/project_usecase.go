package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/donepaid-api/internal/application/dto"
	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/project"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
)

// ProjectUseCase envío de proyectos con hitos y seguimiento de tareas.
type ProjectUseCase struct {
	repo      repository.ProjectRepository
	customers repository.CustomerRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, customers repository.CustomerRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, customers: customers}
}

// Create registra el proyecto con sus hitos y tareas (todas en TODO).
func (uc *ProjectUseCase) Create(ctx context.Context, ownerID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Budget.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	if in.CustomerID != "" {
		c, err := uc.customers.GetByID(ctx, ownerID, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	p := &entity.Project{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		CustomerID:  in.CustomerID,
		Name:        name,
		Description: in.Description,
		Budget:      in.Budget,
		Status:      entity.ProjectPending,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, mr := range in.Milestones {
		if strings.TrimSpace(mr.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		m := &entity.Milestone{
			ID:        uuid.New().String(),
			ProjectID: p.ID,
			Name:      strings.TrimSpace(mr.Name),
			DueDate:   mr.DueDate,
			Position:  i,
		}
		for j, title := range mr.Tasks {
			if strings.TrimSpace(title) == "" {
				return nil, domain.ErrInvalidInput
			}
			m.Tasks = append(m.Tasks, &entity.Task{
				ID:          uuid.New().String(),
				MilestoneID: m.ID,
				Title:       strings.TrimSpace(title),
				Status:      entity.TaskTodo,
				Position:    j,
			})
		}
		p.Milestones = append(p.Milestones, m)
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// GetByID devuelve el proyecto completo con su progreso.
func (uc *ProjectUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.ProjectResponse, error) {
	p, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// List lista proyectos del propietario (cabeceras; el progreso requiere el detalle).
func (uc *ProjectUseCase) List(ctx context.Context, ownerID string, page dto.PageRequest) ([]*dto.ProjectResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOwner(ctx, ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProjectResponse(p))
	}
	return out, nil
}

// UpdateTaskStatus cambia el estado de una tarea y recalcula el estado del proyecto.
func (uc *ProjectUseCase) UpdateTaskStatus(ctx context.Context, ownerID, projectID, taskID, status string) (*dto.ProjectResponse, error) {
	ts, ok := entity.ParseTaskStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.load(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	task := findTask(p, taskID)
	if task == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.UpdateTaskStatus(ctx, p.ID, taskID, ts); err != nil {
		return nil, err
	}
	task.Status = ts
	if next := project.DeriveStatus(p); next != p.Status {
		if err := uc.repo.UpdateStatus(ctx, p.ID, next); err != nil {
			return nil, err
		}
		p.Status = next
	}
	return toProjectResponse(p), nil
}

// Delete elimina el proyecto con sus hitos y tareas.
func (uc *ProjectUseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.repo.Delete(ctx, ownerID, id)
}

func (uc *ProjectUseCase) load(ctx context.Context, ownerID, id string) (*entity.Project, error) {
	p, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func findTask(p *entity.Project, taskID string) *entity.Task {
	for _, m := range p.Milestones {
		for _, t := range m.Tasks {
			if t.ID == taskID {
				return t
			}
		}
	}
	return nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	out := &dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CustomerID:  p.CustomerID,
		Budget:      p.Budget,
		Status:      string(p.Status),
		Progress:    project.ProjectProgress(p),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
	}
	for _, m := range p.Milestones {
		mr := &dto.MilestoneResponse{
			ID:        m.ID,
			Name:      m.Name,
			DueDate:   m.DueDate,
			Progress:  project.MilestoneProgress(m),
			Completed: project.MilestoneCompleted(m),
			Tasks:     make([]*dto.TaskResponse, 0, len(m.Tasks)),
		}
		for _, t := range m.Tasks {
			mr.Tasks = append(mr.Tasks, &dto.TaskResponse{ID: t.ID, Title: t.Title, Status: string(t.Status)})
		}
		out.Milestones = append(out.Milestones, mr)
	}
	return out
}
