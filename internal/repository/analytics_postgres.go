package repository

import (
	"context"
	"database/sql"

	"github.com/boardstack/boardstack/internal/domain"
)

type analyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new PostgreSQL analytics repository
func NewAnalyticsRepository(db *sql.DB) domain.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// CountTasks derives all five metrics for one month window in a single
// aggregate query. "Overdue" compares due_date against the window's own
// evaluation instant, not a shared clock, which is what makes the prior
// month answer "overdue as of its close".
func (r *analyticsRepository) CountTasks(ctx context.Context, scope domain.AnalyticsScope, window domain.MonthWindow) (domain.TaskCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE assignee_id::text = $1),
			COUNT(*) FILTER (WHERE status <> 'DONE'),
			COUNT(*) FILTER (WHERE status = 'DONE'),
			COUNT(*) FILTER (WHERE status <> 'DONE' AND due_date IS NOT NULL AND due_date < $2)
		FROM tasks
		WHERE workspace_id = $3
			AND ($4 = '' OR project_id::text = $4)
			AND created_at >= $5 AND created_at <= $6
	`

	var counts domain.TaskCounts
	err := r.db.QueryRowContext(ctx, query,
		scope.AssigneeID,
		window.OverdueAt.UTC(),
		scope.WorkspaceID,
		scope.ProjectID,
		window.Start.UTC(),
		window.End.UTC(),
	).Scan(
		&counts.Total,
		&counts.Assigned,
		&counts.Incomplete,
		&counts.Completed,
		&counts.Overdue,
	)
	if err != nil {
		return domain.TaskCounts{}, &domain.ErrStorage{Op: "count tasks", Err: err}
	}
	return counts, nil
}
