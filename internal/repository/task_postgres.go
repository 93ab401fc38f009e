package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/boardstack/boardstack/internal/domain"
)

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new PostgreSQL task repository
func NewTaskRepository(db *sql.DB) domain.TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, workspace_id, project_id, name, status, position, assignee_id, due_date, description, created_at, updated_at`

// appendPosition locks the (workspace, status) partition and returns the
// next append slot: highest position plus the step, or the step itself when
// the column is empty. The lock holds until the surrounding transaction
// commits, so two concurrent appends cannot pick the same slot.
func appendPosition(ctx context.Context, tx *sql.Tx, workspaceID string, status domain.TaskStatus) (int, error) {
	query := `
		SELECT COALESCE(MAX(position), 0)
		FROM (
			SELECT position FROM tasks
			WHERE workspace_id = $1 AND status = $2
			FOR UPDATE
		) partition
	`
	var max int
	if err := tx.QueryRowContext(ctx, query, workspaceID, status).Scan(&max); err != nil {
		return 0, &domain.ErrStorage{Op: "compute task position", Err: err}
	}
	return max + domain.PositionStep, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.DueDate != nil {
		due := task.DueDate.UTC()
		task.DueDate = &due
	}

	return withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		position, err := appendPosition(ctx, tx, task.WorkspaceID, task.Status)
		if err != nil {
			return err
		}
		task.Position = position

		query := `
			INSERT INTO tasks (` + taskColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`
		_, err = tx.ExecContext(ctx, query,
			task.ID,
			task.WorkspaceID,
			task.ProjectID,
			task.Name,
			task.Status,
			task.Position,
			nullString(task.AssigneeID),
			task.DueDate,
			nullString(task.Description),
			task.CreatedAt,
			task.UpdatedAt,
		)
		if err != nil {
			return &domain.ErrStorage{Op: "create task", Err: err}
		}
		return nil
	})
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := domain.ScanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "task", ID: id}
	}
	if err != nil {
		return nil, &domain.ErrStorage{Op: "get task", Err: err}
	}
	return task, nil
}

func (r *taskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	builder := sq.Select(
		"id", "workspace_id", "project_id", "name", "status", "position",
		"assignee_id", "due_date", "description", "created_at", "updated_at",
	).
		From("tasks").
		Where(sq.Eq{"workspace_id": filter.WorkspaceID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.ProjectID != "" {
		builder = builder.Where(sq.Eq{"project_id": filter.ProjectID})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.AssigneeID != "" {
		builder = builder.Where(sq.Eq{"assignee_id": filter.AssigneeID})
	}
	if filter.DueDate != nil {
		builder = builder.Where(sq.Eq{"due_date": filter.DueDate.UTC()})
	}
	if filter.Search != "" {
		builder = builder.Where(sq.ILike{"name": "%" + filter.Search + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, &domain.ErrStorage{Op: "build task query", Err: err}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.ErrStorage{Op: "list tasks", Err: err}
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := domain.ScanTask(rows)
		if err != nil {
			return nil, &domain.ErrStorage{Op: "scan task", Err: err}
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.ErrStorage{Op: "list tasks", Err: err}
	}
	return tasks, nil
}

// Update persists an edit. A move to another status column appends the task
// at the end of the destination partition; the position is computed inside
// the same transaction as the write.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task, reposition bool) error {
	task.UpdatedAt = time.Now().UTC()
	if task.DueDate != nil {
		due := task.DueDate.UTC()
		task.DueDate = &due
	}

	return withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		if reposition {
			position, err := appendPosition(ctx, tx, task.WorkspaceID, task.Status)
			if err != nil {
				return err
			}
			task.Position = position
		}

		query := `
			UPDATE tasks
			SET name = $1, status = $2, position = $3, project_id = $4,
				assignee_id = $5, due_date = $6, description = $7, updated_at = $8
			WHERE id = $9
		`
		result, err := tx.ExecContext(ctx, query,
			task.Name,
			task.Status,
			task.Position,
			task.ProjectID,
			nullString(task.AssigneeID),
			task.DueDate,
			nullString(task.Description),
			task.UpdatedAt,
			task.ID,
		)
		if err != nil {
			return &domain.ErrStorage{Op: "update task", Err: err}
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return &domain.ErrStorage{Op: "update task", Err: err}
		}
		if rows == 0 {
			return &domain.ErrNotFound{Entity: "task", ID: task.ID}
		}
		return nil
	})
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return &domain.ErrStorage{Op: "delete task", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return &domain.ErrStorage{Op: "delete task", Err: err}
	}
	if rows == 0 {
		return &domain.ErrNotFound{Entity: "task", ID: id}
	}
	return nil
}

// BulkUpdatePositions applies a drag-and-drop batch atomically. The
// referenced rows are locked up front; every task must exist and all of
// them must belong to a single workspace. verify runs after the workspace
// is resolved and before any write, so an authorization failure rolls the
// whole batch back. Returns the resolved workspace ID.
func (r *taskRepository) BulkUpdatePositions(ctx context.Context, updates []domain.TaskPositionUpdate, verify func(workspaceID string) error) (string, error) {
	ids := make([]string, 0, len(updates))
	for _, u := range updates {
		ids = append(ids, u.ID)
	}

	var workspaceID string
	err := withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT id, workspace_id FROM tasks WHERE id = ANY($1) FOR UPDATE`,
			pq.Array(ids),
		)
		if err != nil {
			return &domain.ErrStorage{Op: "lock tasks", Err: err}
		}

		found := make(map[string]string, len(ids))
		workspaces := make(map[string]struct{})
		for rows.Next() {
			var id, wsID string
			if err := rows.Scan(&id, &wsID); err != nil {
				rows.Close()
				return &domain.ErrStorage{Op: "scan task row", Err: err}
			}
			found[id] = wsID
			workspaces[wsID] = struct{}{}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return &domain.ErrStorage{Op: "lock tasks", Err: err}
		}
		rows.Close()

		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return &domain.ErrNotFound{Entity: "task", ID: id}
			}
		}
		if len(workspaces) != 1 {
			return &domain.ErrCrossWorkspaceBatch{Workspaces: len(workspaces)}
		}
		for wsID := range workspaces {
			workspaceID = wsID
		}

		if err := verify(workspaceID); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, u := range updates {
			query, args, err := sq.Update("tasks").
				Set("status", u.Status).
				Set("position", u.Position).
				Set("updated_at", now).
				Where(sq.Eq{"id": u.ID}).
				PlaceholderFormat(sq.Dollar).
				ToSql()
			if err != nil {
				return &domain.ErrStorage{Op: "build bulk update", Err: err}
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return &domain.ErrStorage{Op: "bulk update task", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return workspaceID, nil
}
