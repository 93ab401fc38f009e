package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardstack/boardstack/internal/domain"
)

func TestAnalyticsRepository_CountTasks(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewAnalyticsRepository(db)
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	scope := domain.AnalyticsScope{WorkspaceID: "ws1", AssigneeID: "u1"}
	window := domain.CurrentMonthWindow(now)

	t.Run("workspace scope", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"total", "assigned", "incomplete", "completed", "overdue"}).
			AddRow(10, 4, 6, 4, 2)
		mock.ExpectQuery(`SELECT`).
			WithArgs("u1", window.OverdueAt.UTC(), "ws1", "", window.Start.UTC(), window.End.UTC()).
			WillReturnRows(rows)

		counts, err := repo.CountTasks(context.Background(), scope, window)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskCounts{Total: 10, Assigned: 4, Incomplete: 6, Completed: 4, Overdue: 2}, counts)
	})

	t.Run("project scope passes the project filter", func(t *testing.T) {
		projectScope := scope
		projectScope.ProjectID = "proj1"

		rows := sqlmock.NewRows([]string{"total", "assigned", "incomplete", "completed", "overdue"}).
			AddRow(3, 1, 2, 1, 0)
		mock.ExpectQuery(`SELECT`).
			WithArgs("u1", window.OverdueAt.UTC(), "ws1", "proj1", window.Start.UTC(), window.End.UTC()).
			WillReturnRows(rows)

		counts, err := repo.CountTasks(context.Background(), projectScope, window)
		require.NoError(t, err)
		assert.Equal(t, 3, counts.Total)
	})

	t.Run("query failure wraps as a storage error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT`).
			WillReturnError(assert.AnError)

		_, err := repo.CountTasks(context.Background(), scope, window)
		var storageErr *domain.ErrStorage
		assert.ErrorAs(t, err, &storageErr)
	})
}
