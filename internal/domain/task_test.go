package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_Validate(t *testing.T) {
	for _, status := range []TaskStatus{TaskStatusBacklog, TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone} {
		assert.NoError(t, status.Validate())
	}

	assert.Error(t, TaskStatus("ARCHIVED").Validate())
	assert.Error(t, TaskStatus("todo").Validate(), "statuses are case sensitive")
	assert.Error(t, TaskStatus("").Validate())
}

func TestTask_Validate(t *testing.T) {
	valid := Task{
		ID:          "task1",
		WorkspaceID: "ws1",
		ProjectID:   "proj1",
		Name:        "Fix the build",
		Status:      TaskStatusTodo,
		Position:    1000,
	}
	assert.NoError(t, valid.Validate())

	missingProject := valid
	missingProject.ProjectID = ""
	assert.Error(t, missingProject.Validate())

	zeroPosition := valid
	zeroPosition.Position = 0
	assert.Error(t, zeroPosition.Validate())

	badStatus := valid
	badStatus.Status = "DOING"
	assert.Error(t, badStatus.Validate())
}

func TestTaskPositionUpdate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		update  TaskPositionUpdate
		wantErr bool
	}{
		{"valid", TaskPositionUpdate{ID: "t1", Status: TaskStatusDone, Position: 1000}, false},
		{"upper bound", TaskPositionUpdate{ID: "t1", Status: TaskStatusTodo, Position: 1_000_000}, false},
		{"below minimum", TaskPositionUpdate{ID: "t1", Status: TaskStatusTodo, Position: 999}, true},
		{"above maximum", TaskPositionUpdate{ID: "t1", Status: TaskStatusTodo, Position: 1_000_001}, true},
		{"missing id", TaskPositionUpdate{Status: TaskStatusTodo, Position: 1000}, true},
		{"bad status", TaskPositionUpdate{ID: "t1", Status: "NOPE", Position: 1000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
