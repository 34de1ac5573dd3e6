package project_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/donepaid-api/internal/domain/entity"
	"github.com/jhoicas/donepaid-api/internal/domain/project"
)

func milestone(statuses ...entity.TaskStatus) *entity.Milestone {
	m := &entity.Milestone{}
	for _, s := range statuses {
		m.Tasks = append(m.Tasks, &entity.Task{Status: s})
	}
	return m
}

func TestMilestoneProgress(t *testing.T) {
	assert.Equal(t, 0, project.MilestoneProgress(milestone()))
	assert.Equal(t, 0, project.MilestoneProgress(nil))
	assert.Equal(t, 33, project.MilestoneProgress(milestone(entity.TaskDone, entity.TaskTodo, entity.TaskInProgress)))
	assert.Equal(t, 100, project.MilestoneProgress(milestone(entity.TaskDone, entity.TaskDone)))
}

func TestProjectProgress(t *testing.T) {
	p := &entity.Project{Milestones: []*entity.Milestone{
		milestone(entity.TaskDone, entity.TaskDone),
		milestone(entity.TaskTodo, entity.TaskDone),
		milestone(),
	}}
	// (100 + 50 + 0) / 3
	assert.Equal(t, 50, project.ProjectProgress(p))
	assert.Equal(t, 0, project.ProjectProgress(&entity.Project{}))
}

func TestMilestoneCompleted(t *testing.T) {
	assert.False(t, project.MilestoneCompleted(milestone()))
	assert.False(t, project.MilestoneCompleted(milestone(entity.TaskDone, entity.TaskTodo)))
	assert.True(t, project.MilestoneCompleted(milestone(entity.TaskDone)))
}

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, entity.ProjectPending, project.DeriveStatus(&entity.Project{}))
	assert.Equal(t, entity.ProjectPending, project.DeriveStatus(&entity.Project{
		Milestones: []*entity.Milestone{milestone(entity.TaskTodo)},
	}))
	assert.Equal(t, entity.ProjectOngoing, project.DeriveStatus(&entity.Project{
		Milestones: []*entity.Milestone{milestone(entity.TaskInProgress, entity.TaskTodo)},
	}))
	assert.Equal(t, entity.ProjectCompleted, project.DeriveStatus(&entity.Project{
		Milestones: []*entity.Milestone{milestone(entity.TaskDone), milestone(entity.TaskDone)},
	}))
}
