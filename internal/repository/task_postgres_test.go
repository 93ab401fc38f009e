package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardstack/boardstack/internal/domain"
)

func TestTaskRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskRepository(db)

	task := &domain.Task{
		ID:          "t1",
		WorkspaceID: "ws1",
		ProjectID:   "proj1",
		Name:        "Write the report",
		Status:      domain.TaskStatusTodo,
	}

	t.Run("appends after the partition's highest position", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\), 0\)`).
			WithArgs("ws1", domain.TaskStatusTodo).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3000))
		mock.ExpectExec(`INSERT INTO tasks`).
			WithArgs("t1", "ws1", "proj1", "Write the report", domain.TaskStatusTodo, 4000,
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Create(context.Background(), task)
		require.NoError(t, err)
		assert.Equal(t, 4000, task.Position)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty partition starts at the step", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\), 0\)`).
			WithArgs("ws1", domain.TaskStatusTodo).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
		mock.ExpectExec(`INSERT INTO tasks`).
			WithArgs("t1", "ws1", "proj1", "Write the report", domain.TaskStatusTodo, 1000,
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Create(context.Background(), task)
		require.NoError(t, err)
		assert.Equal(t, 1000, task.Position)
	})
}

func TestTaskRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskRepository(db)

	task := &domain.Task{
		ID:          "t1",
		WorkspaceID: "ws1",
		ProjectID:   "proj1",
		Name:        "Write the report",
		Status:      domain.TaskStatusDone,
		Position:    2000,
	}

	t.Run("field edit keeps the position", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE tasks`).
			WithArgs("Write the report", domain.TaskStatusDone, 2000, "proj1",
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "t1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Update(context.Background(), task, false)
		require.NoError(t, err)
		assert.Equal(t, 2000, task.Position)
	})

	t.Run("status move appends to the destination partition", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\), 0\)`).
			WithArgs("ws1", domain.TaskStatusDone).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(5000))
		mock.ExpectExec(`UPDATE tasks`).
			WithArgs("Write the report", domain.TaskStatusDone, 6000, "proj1",
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "t1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Update(context.Background(), task, true)
		require.NoError(t, err)
		assert.Equal(t, 6000, task.Position)
	})

	t.Run("missing task resolves to not found and rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE tasks`).
			WithArgs("Write the report", domain.TaskStatusDone, 6000, "proj1",
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "t1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Update(context.Background(), task, false)
		var notFound *domain.ErrNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestTaskRepository_BulkUpdatePositions(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskRepository(db)

	updates := []domain.TaskPositionUpdate{
		{ID: "t1", Status: domain.TaskStatusDone, Position: 1000},
		{ID: "t2", Status: domain.TaskStatusTodo, Position: 2000},
	}

	noVerify := func(string) error { return nil }

	t.Run("applies the batch and returns the workspace", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, workspace_id FROM tasks WHERE id = ANY\(\$1\) FOR UPDATE`).
			WithArgs(pq.Array([]string{"t1", "t2"})).
			WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id"}).
				AddRow("t1", "ws1").
				AddRow("t2", "ws1"))
		mock.ExpectExec(`UPDATE tasks SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE tasks SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		workspaceID, err := repo.BulkUpdatePositions(context.Background(), updates, noVerify)
		require.NoError(t, err)
		assert.Equal(t, "ws1", workspaceID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mixed workspaces roll the batch back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, workspace_id FROM tasks WHERE id = ANY\(\$1\) FOR UPDATE`).
			WithArgs(pq.Array([]string{"t1", "t2"})).
			WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id"}).
				AddRow("t1", "ws1").
				AddRow("t2", "ws2"))
		mock.ExpectRollback()

		_, err := repo.BulkUpdatePositions(context.Background(), updates, noVerify)
		var crossBatch *domain.ErrCrossWorkspaceBatch
		require.ErrorAs(t, err, &crossBatch)
		assert.Equal(t, 2, crossBatch.Workspaces)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing task rolls the batch back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, workspace_id FROM tasks WHERE id = ANY\(\$1\) FOR UPDATE`).
			WithArgs(pq.Array([]string{"t1", "t2"})).
			WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id"}).
				AddRow("t1", "ws1"))
		mock.ExpectRollback()

		_, err := repo.BulkUpdatePositions(context.Background(), updates, noVerify)
		var notFound *domain.ErrNotFound
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("verify failure rolls the batch back before any write", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, workspace_id FROM tasks WHERE id = ANY\(\$1\) FOR UPDATE`).
			WithArgs(pq.Array([]string{"t1", "t2"})).
			WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id"}).
				AddRow("t1", "ws1").
				AddRow("t2", "ws1"))
		mock.ExpectRollback()

		_, err := repo.BulkUpdatePositions(context.Background(), updates, func(workspaceID string) error {
			assert.Equal(t, "ws1", workspaceID)
			return &domain.ErrUnauthorized{Message: "user is not a member of the workspace"}
		})
		var unauthorized *domain.ErrUnauthorized
		assert.ErrorAs(t, err, &unauthorized)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mid-batch write failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, workspace_id FROM tasks WHERE id = ANY\(\$1\) FOR UPDATE`).
			WithArgs(pq.Array([]string{"t1", "t2"})).
			WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id"}).
				AddRow("t1", "ws1").
				AddRow("t2", "ws1"))
		mock.ExpectExec(`UPDATE tasks SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE tasks SET`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err := repo.BulkUpdatePositions(context.Background(), updates, noVerify)
		var storageErr *domain.ErrStorage
		assert.ErrorAs(t, err, &storageErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskRepository(db)
	now := time.Now().UTC()

	taskRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "workspace_id", "project_id", "name", "status", "position",
			"assignee_id", "due_date", "description", "created_at", "updated_at",
		})
	}

	t.Run("workspace filter only", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM tasks WHERE workspace_id = \$1 ORDER BY created_at DESC`).
			WithArgs("ws1").
			WillReturnRows(taskRows().
				AddRow("t1", "ws1", "proj1", "A", "TODO", 1000, nil, nil, nil, now, now).
				AddRow("t2", "ws1", "proj1", "B", "DONE", 1000, "u1", now, "desc", now, now))

		tasks, err := repo.List(context.Background(), domain.TaskFilter{WorkspaceID: "ws1"})
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Empty(t, tasks[0].AssigneeID)
		assert.Equal(t, "u1", tasks[1].AssigneeID)
		assert.NotNil(t, tasks[1].DueDate)
	})

	t.Run("search uses ILIKE", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM tasks WHERE workspace_id = \$1 AND name ILIKE \$2`).
			WithArgs("ws1", "%report%").
			WillReturnRows(taskRows())

		tasks, err := repo.List(context.Background(), domain.TaskFilter{WorkspaceID: "ws1", Search: "report"})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestTaskRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM tasks WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), "ghost")
	var notFound *domain.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}
