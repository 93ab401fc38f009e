package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/boardstack/boardstack/internal/domain"
)

type projectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new PostgreSQL project repository
func NewProjectRepository(db *sql.DB) domain.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	query := `
		INSERT INTO projects (id, workspace_id, name, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.WorkspaceID,
		project.Name,
		nullString(project.ImageURL),
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return &domain.ErrStorage{Op: "create project", Err: err}
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `
		SELECT id, workspace_id, name, image_url, created_at, updated_at
		FROM projects
		WHERE id = $1
	`
	project, err := domain.ScanProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "project", ID: id}
	}
	if err != nil {
		return nil, &domain.ErrStorage{Op: "get project", Err: err}
	}
	return project, nil
}

func (r *projectRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Project, error) {
	query := `
		SELECT id, workspace_id, name, image_url, created_at, updated_at
		FROM projects
		WHERE workspace_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, &domain.ErrStorage{Op: "list projects", Err: err}
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		project, err := domain.ScanProject(rows)
		if err != nil {
			return nil, &domain.ErrStorage{Op: "scan project", Err: err}
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.ErrStorage{Op: "list projects", Err: err}
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	project.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE projects
		SET name = $1, image_url = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		project.Name,
		nullString(project.ImageURL),
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return &domain.ErrStorage{Op: "update project", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return &domain.ErrStorage{Op: "update project", Err: err}
	}
	if rows == 0 {
		return &domain.ErrNotFound{Entity: "project", ID: project.ID}
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return &domain.ErrStorage{Op: "delete project", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return &domain.ErrStorage{Op: "delete project", Err: err}
	}
	if rows == 0 {
		return &domain.ErrNotFound{Entity: "project", ID: id}
	}
	return nil
}
