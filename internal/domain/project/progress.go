package project

import "github.com/jhoicas/donepaid-api/internal/domain/entity"

// MilestoneProgress porcentaje (0-100, truncado) de tareas terminadas del hito.
// Un hito sin tareas tiene progreso 0.
func MilestoneProgress(m *entity.Milestone) int {
	if m == nil || len(m.Tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range m.Tasks {
		if t.Status == entity.TaskDone {
			done++
		}
	}
	return done * 100 / len(m.Tasks)
}

// ProjectProgress promedio (truncado) del progreso de sus hitos; 0 si no tiene hitos.
func ProjectProgress(p *entity.Project) int {
	if p == nil || len(p.Milestones) == 0 {
		return 0
	}
	sum := 0
	for _, m := range p.Milestones {
		sum += MilestoneProgress(m)
	}
	return sum / len(p.Milestones)
}

// MilestoneCompleted un hito está completo cuando tiene tareas y todas están en DONE.
func MilestoneCompleted(m *entity.Milestone) bool {
	return m != nil && len(m.Tasks) > 0 && MilestoneProgress(m) == 100
}

// DeriveStatus estado del proyecto a partir de sus tareas:
// sin tareas iniciadas → PENDING, todas terminadas → COMPLETED, en otro caso ONGOING.
func DeriveStatus(p *entity.Project) entity.ProjectStatus {
	total, done, started := 0, 0, 0
	for _, m := range p.Milestones {
		for _, t := range m.Tasks {
			total++
			switch t.Status {
			case entity.TaskDone:
				done++
				started++
			case entity.TaskInProgress:
				started++
			}
		}
	}
	switch {
	case total > 0 && done == total:
		return entity.ProjectCompleted
	case started > 0:
		return entity.ProjectOngoing
	default:
		return entity.ProjectPending
	}
}
