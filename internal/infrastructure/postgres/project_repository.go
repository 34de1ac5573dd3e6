package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/donepaid-api/internal/domain"
	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `id, owner_id, customer_id, name, description, budget, status, start_date, end_date, created_at, updated_at`

// ProjectRepo proyectos con hitos y tareas.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

// Create inserta proyecto, hitos y tareas en un batch.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO projects (`+projectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.OwnerID, nullIfEmpty(p.CustomerID), p.Name, p.Description, p.Budget, string(p.Status),
		p.StartDate, p.EndDate, p.CreatedAt, p.UpdatedAt)
	for _, m := range p.Milestones {
		batch.Queue(`INSERT INTO milestones (id, project_id, name, due_date, position) VALUES ($1, $2, $3, $4, $5)`,
			m.ID, p.ID, m.Name, m.DueDate, m.Position)
		for _, t := range m.Tasks {
			batch.Queue(`INSERT INTO tasks (id, milestone_id, title, status, position) VALUES ($1, $2, $3, $4, $5)`,
				t.ID, m.ID, t.Title, string(t.Status), t.Position)
		}
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// sendBatch usa SendBatch cuando el Querier lo soporta (pool y tx lo hacen); si no, ejecuta en serie.
func (r *ProjectRepo) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	type batcher interface {
		SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	}
	if b, ok := r.q.(batcher); ok {
		return b.SendBatch(ctx, batch).Close()
	}
	for _, qq := range batch.QueuedQueries {
		if _, err := r.q.Exec(ctx, qq.SQL, qq.Arguments...); err != nil {
			return err
		}
	}
	return nil
}

// GetByID carga el proyecto con hitos y tareas ordenados por posición.
func (r *ProjectRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND owner_id = $2`
	p, err := scanProject(r.q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT m.id, m.name, m.due_date, m.position, t.id, t.title, t.status, t.position
		FROM milestones m
		LEFT JOIN tasks t ON t.milestone_id = m.id
		WHERE m.project_id = $1
		ORDER BY m.position, t.position`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("get project milestones: %w", err)
	}
	defer rows.Close()

	var current *entity.Milestone
	for rows.Next() {
		var (
			m                    entity.Milestone
			taskID, title, state *string
			taskPos              *int
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.DueDate, &m.Position, &taskID, &title, &state, &taskPos); err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		if current == nil || current.ID != m.ID {
			m.ProjectID = p.ID
			current = &m
			p.Milestones = append(p.Milestones, current)
		}
		if taskID != nil {
			t := &entity.Task{
				ID:          *taskID,
				MilestoneID: current.ID,
				Title:       derefString(title),
				Status:      entity.TaskStatus(derefString(state)),
			}
			if taskPos != nil {
				t.Position = *taskPos
			}
			current.Tasks = append(current.Tasks, t)
		}
	}
	return p, rows.Err()
}

// ListByOwner lista cabeceras de proyectos.
func (r *ProjectRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + ` FROM projects
		WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza el estado derivado del proyecto.
func (r *ProjectRepo) UpdateStatus(ctx context.Context, projectID string, status entity.ProjectStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE projects SET status = $2, updated_at = now() WHERE id = $1`, projectID, string(status))
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateTaskStatus cambia el estado de una tarea del proyecto.
func (r *ProjectRepo) UpdateTaskStatus(ctx context.Context, projectID, taskID string, status entity.TaskStatus) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE tasks t SET status = $3
		FROM milestones m
		WHERE t.id = $2 AND t.milestone_id = m.id AND m.project_id = $1`, projectID, taskID, string(status))
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el proyecto (hitos y tareas en cascada).
func (r *ProjectRepo) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned(ctx, r.q, "projects", ownerID, id)
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var (
		p          entity.Project
		customerID *string
	)
	if err := row.Scan(&p.ID, &p.OwnerID, &customerID, &p.Name, &p.Description, &p.Budget, &p.Status,
		&p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CustomerID = derefString(customerID)
	return &p, nil
}
