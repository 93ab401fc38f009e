package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/pkg/logger"
)

// TaskService gates task operations on workspace membership and drives the
// position-ordering rules: appends on create, re-append on column moves,
// and atomic bulk reorders.
type TaskService struct {
	repo          domain.TaskRepository
	projectRepo   domain.ProjectRepository
	workspaceRepo domain.WorkspaceRepository
	authService   domain.AuthService
	logger        logger.Logger
}

func NewTaskService(
	repo domain.TaskRepository,
	projectRepo domain.ProjectRepository,
	workspaceRepo domain.WorkspaceRepository,
	authService domain.AuthService,
	logger logger.Logger,
) *TaskService {
	return &TaskService{
		repo:          repo,
		projectRepo:   projectRepo,
		workspaceRepo: workspaceRepo,
		authService:   authService,
		logger:        logger,
	}
}

var _ domain.TaskServiceInterface = (*TaskService)(nil)

// requireMember resolves the caller's membership in the workspace.
func (s *TaskService) requireMember(ctx context.Context, workspaceID string) (*domain.Member, error) {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.workspaceRepo.GetMember(ctx, workspaceID, user.ID)
}

// validateAssignee requires the assignee to already hold membership in the
// task's workspace.
func (s *TaskService) validateAssignee(ctx context.Context, workspaceID, assigneeID string) error {
	if assigneeID == "" {
		return nil
	}
	if _, err := s.workspaceRepo.GetMember(ctx, workspaceID, assigneeID); err != nil {
		var unauthorized *domain.ErrUnauthorized
		if errors.As(err, &unauthorized) {
			return &domain.ErrInvalidAssignee{UserID: assigneeID}
		}
		return err
	}
	return nil
}

// CreateTask creates a task appended to the end of its status column.
func (s *TaskService) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if _, err := s.requireMember(ctx, task.WorkspaceID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.WorkspaceID != task.WorkspaceID {
		return nil, domain.NewValidationError("project does not belong to the workspace")
	}

	if err := s.validateAssignee(ctx, task.WorkspaceID, task.AssigneeID); err != nil {
		return nil, err
	}

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusTodo
	}
	// position is computed by the repository inside the insert transaction;
	// seed it so validation passes
	task.Position = domain.PositionStep
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.WithField("workspace_id", task.WorkspaceID).WithField("error", err.Error()).Error("Failed to create task")
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireMember(ctx, task.WorkspaceID); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	if filter.WorkspaceID == "" {
		return nil, domain.NewValidationError("workspace_id is required")
	}
	if _, err := s.requireMember(ctx, filter.WorkspaceID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

// UpdateTask applies a partial edit. Moving the task to another status
// column appends it at the end of the destination partition; no
// interpolation between siblings happens here.
func (s *TaskService) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireMember(ctx, task.WorkspaceID); err != nil {
		return nil, err
	}

	reposition := false
	if input.Name != nil {
		task.Name = *input.Name
	}
	if input.Status != nil && *input.Status != task.Status {
		if err := input.Status.Validate(); err != nil {
			return nil, err
		}
		task.Status = *input.Status
		reposition = true
	}
	if input.ProjectID != nil && *input.ProjectID != task.ProjectID {
		project, err := s.projectRepo.GetByID(ctx, *input.ProjectID)
		if err != nil {
			return nil, err
		}
		if project.WorkspaceID != task.WorkspaceID {
			return nil, domain.NewValidationError("project does not belong to the workspace")
		}
		task.ProjectID = *input.ProjectID
	}
	if input.AssigneeID != nil {
		if err := s.validateAssignee(ctx, task.WorkspaceID, *input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = *input.AssigneeID
	}
	if input.DueDate != nil {
		due := *input.DueDate
		task.DueDate = &due
	}
	if input.Description != nil {
		task.Description = *input.Description
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task, reposition); err != nil {
		s.logger.WithField("task_id", id).WithField("error", err.Error()).Error("Failed to update task")
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.requireMember(ctx, task.WorkspaceID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithField("task_id", id).WithField("error", err.Error()).Error("Failed to delete task")
		return err
	}
	return nil
}

// BulkUpdateTasks commits a drag-and-drop batch. Validation happens before
// any write; existence, single-workspace and membership checks run inside
// the repository transaction so the batch applies fully or not at all.
func (s *TaskService) BulkUpdateTasks(ctx context.Context, updates []domain.TaskPositionUpdate) ([]*domain.Task, error) {
	if len(updates) == 0 {
		return nil, domain.NewValidationError("at least one task is required")
	}
	for i := range updates {
		if err := updates[i].Validate(); err != nil {
			return nil, err
		}
	}

	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}

	workspaceID, err := s.repo.BulkUpdatePositions(ctx, updates, func(workspaceID string) error {
		_, err := s.workspaceRepo.GetMember(ctx, workspaceID, user.ID)
		return err
	})
	if err != nil {
		s.logger.WithField("user_id", user.ID).WithField("error", err.Error()).Error("Failed to bulk update tasks")
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(updates))
	for _, u := range updates {
		task, err := s.repo.GetByID(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	s.logger.WithField("workspace_id", workspaceID).WithField("count", len(updates)).Debug("Applied bulk task reorder")
	return tasks, nil
}
