package domain

import (
	"context"
	"database/sql"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_project_repository.go -package mocks github.com/boardstack/boardstack/internal/domain ProjectRepository
//go:generate mockgen -destination mocks/mock_project_service.go -package mocks github.com/boardstack/boardstack/internal/domain ProjectServiceInterface

// Project is owned exclusively by its workspace.
type Project struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	Name        string    `json:"name" db:"name"`
	ImageURL    string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Validate performs validation on the project fields
func (p *Project) Validate() error {
	if p.ID == "" {
		return NewValidationError("project id is required")
	}
	if p.WorkspaceID == "" {
		return NewValidationError("project workspace_id is required")
	}
	if p.Name == "" {
		return NewValidationError("project name is required")
	}
	if len(p.Name) > 255 {
		return NewValidationError("project name length must be between 1 and 255")
	}
	if p.ImageURL != "" && !govalidator.IsURL(p.ImageURL) {
		return NewValidationError("project image URL is invalid")
	}
	return nil
}

// ScanProject scans a project row.
func ScanProject(scanner interface {
	Scan(dest ...interface{}) error
}) (*Project, error) {
	var p Project
	var imageURL sql.NullString
	if err := scanner.Scan(
		&p.ID,
		&p.WorkspaceID,
		&p.Name,
		&imageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.ImageURL = imageURL.String
	return &p, nil
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
}

type ProjectServiceInterface interface {
	CreateProject(ctx context.Context, workspaceID, name, imageURL string) (*Project, error)
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context, workspaceID string) ([]*Project, error)
	UpdateProject(ctx context.Context, id, name, imageURL string) (*Project, error)
	DeleteProject(ctx context.Context, id string) error
}
