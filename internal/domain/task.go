package domain

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -destination mocks/mock_task_repository.go -package mocks github.com/boardstack/boardstack/internal/domain TaskRepository
//go:generate mockgen -destination mocks/mock_task_service.go -package mocks github.com/boardstack/boardstack/internal/domain TaskServiceInterface

// TaskStatus is the closed set of board columns.
type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "BACKLOG"
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusInReview   TaskStatus = "IN_REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

// Validate checks that the status is one of the known variants.
func (s TaskStatus) Validate() error {
	switch s {
	case TaskStatusBacklog, TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone:
		return nil
	default:
		return NewValidationError("unknown task status")
	}
}

// Position bounds for the gap-based ordering scheme. A task appended to a
// column lands at max(partition)+PositionStep, or PositionStep when the
// column is empty. Bulk reorders carry client-computed absolute positions
// that must stay within [PositionMin, PositionMax].
const (
	PositionStep = 1000
	PositionMin  = 1000
	PositionMax  = 1_000_000
)

// Task belongs to a project and is ordered by position within its
// (workspace, status) partition.
type Task struct {
	ID          string     `json:"id" db:"id"`
	WorkspaceID string     `json:"workspace_id" db:"workspace_id"`
	ProjectID   string     `json:"project_id" db:"project_id"`
	Name        string     `json:"name" db:"name"`
	Status      TaskStatus `json:"status" db:"status"`
	Position    int        `json:"position" db:"position"`
	AssigneeID  string     `json:"assignee_id,omitempty" db:"assignee_id"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	Description string     `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Validate performs validation on the task fields
func (t *Task) Validate() error {
	if t.ID == "" {
		return NewValidationError("task id is required")
	}
	if t.WorkspaceID == "" {
		return NewValidationError("task workspace_id is required")
	}
	if t.ProjectID == "" {
		return NewValidationError("task project_id is required")
	}
	if t.Name == "" {
		return NewValidationError("task name is required")
	}
	if len(t.Name) > 255 {
		return NewValidationError("task name length must be between 1 and 255")
	}
	if err := t.Status.Validate(); err != nil {
		return err
	}
	if t.Position < 1 {
		return NewValidationError("task position must be strictly positive")
	}
	return nil
}

// TaskFilter narrows tasks.list within one workspace.
type TaskFilter struct {
	WorkspaceID string
	ProjectID   string
	AssigneeID  string
	Status      TaskStatus
	DueDate     *time.Time
	Search      string
}

// TaskPositionUpdate is one element of a bulk reorder batch.
type TaskPositionUpdate struct {
	ID       string     `json:"id"`
	Status   TaskStatus `json:"status"`
	Position int        `json:"position"`
}

// Validate enforces the position range the board's drag library guarantees.
func (u *TaskPositionUpdate) Validate() error {
	if u.ID == "" {
		return NewValidationError("task id is required")
	}
	if err := u.Status.Validate(); err != nil {
		return err
	}
	if u.Position < PositionMin || u.Position > PositionMax {
		return NewValidationError("task position must be between 1000 and 1000000")
	}
	return nil
}

// UpdateTaskInput carries partial edits for tasks.update. Nil pointers mean
// "leave unchanged"; an empty-string *AssigneeID clears the assignee.
type UpdateTaskInput struct {
	Name        *string     `json:"name,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	ProjectID   *string     `json:"project_id,omitempty"`
	AssigneeID  *string     `json:"assignee_id,omitempty"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	Description *string     `json:"description,omitempty"`
}

// ScanTask scans a task row.
func ScanTask(scanner interface {
	Scan(dest ...interface{}) error
}) (*Task, error) {
	var t Task
	var assigneeID, description sql.NullString
	var dueDate sql.NullTime
	if err := scanner.Scan(
		&t.ID,
		&t.WorkspaceID,
		&t.ProjectID,
		&t.Name,
		&t.Status,
		&t.Position,
		&assigneeID,
		&dueDate,
		&description,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.AssigneeID = assigneeID.String
	t.Description = description.String
	if dueDate.Valid {
		due := dueDate.Time
		t.DueDate = &due
	}
	return &t, nil
}

type TaskRepository interface {
	// Create inserts the task, computing its position inside the same
	// transaction: max(position) of the (workspace, status) partition plus
	// PositionStep, or PositionStep for an empty partition.
	Create(ctx context.Context, task *Task) error

	GetByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*Task, error)

	// Update persists field edits. When reposition is true the task is
	// appended to the end of its destination (workspace, status) partition.
	Update(ctx context.Context, task *Task, reposition bool) error

	Delete(ctx context.Context, id string) error

	// BulkUpdatePositions applies a reorder batch atomically. Before any
	// write it locks the referenced rows, verifies every task exists and
	// that all of them share a single workspace, which it returns.
	BulkUpdatePositions(ctx context.Context, updates []TaskPositionUpdate, verify func(workspaceID string) error) (string, error)
}

type TaskServiceInterface interface {
	CreateTask(ctx context.Context, task *Task) (*Task, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*Task, error)
	DeleteTask(ctx context.Context, id string) error
	BulkUpdateTasks(ctx context.Context, updates []TaskPositionUpdate) ([]*Task, error)
}
