package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/pkg/logger"
	"github.com/boardstack/boardstack/pkg/storage"
)

// ProjectService gates project operations on membership of the owning
// workspace. Project-level operations resolve the project first, then the
// workspace gate, so a caller can never act on a project through a
// workspace they don't belong to.
type ProjectService struct {
	repo          domain.ProjectRepository
	workspaceRepo domain.WorkspaceRepository
	authService   domain.AuthService
	fileStorage   storage.FileStorage
	logger        logger.Logger
}

func NewProjectService(
	repo domain.ProjectRepository,
	workspaceRepo domain.WorkspaceRepository,
	authService domain.AuthService,
	fileStorage storage.FileStorage,
	logger logger.Logger,
) *ProjectService {
	return &ProjectService{
		repo:          repo,
		workspaceRepo: workspaceRepo,
		authService:   authService,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

var _ domain.ProjectServiceInterface = (*ProjectService)(nil)

// requireMember resolves the caller's membership in the workspace.
func (s *ProjectService) requireMember(ctx context.Context, workspaceID string) (*domain.Member, error) {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.workspaceRepo.GetMember(ctx, workspaceID, user.ID)
}

func (s *ProjectService) CreateProject(ctx context.Context, workspaceID, name, imageURL string) (*domain.Project, error) {
	if _, err := s.requireMember(ctx, workspaceID); err != nil {
		return nil, err
	}

	project := &domain.Project{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        name,
		ImageURL:    imageURL,
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, project); err != nil {
		s.logger.WithField("workspace_id", workspaceID).WithField("error", err.Error()).Error("Failed to create project")
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireMember(ctx, project.WorkspaceID); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, workspaceID string) ([]*domain.Project, error) {
	if _, err := s.requireMember(ctx, workspaceID); err != nil {
		return nil, err
	}
	return s.repo.ListByWorkspace(ctx, workspaceID)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id, name, imageURL string) (*domain.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireMember(ctx, project.WorkspaceID); err != nil {
		return nil, err
	}

	oldImageURL := project.ImageURL
	project.Name = name
	project.ImageURL = imageURL
	if err := project.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, project); err != nil {
		s.logger.WithField("project_id", id).WithField("error", err.Error()).Error("Failed to update project")
		return nil, err
	}

	if oldImageURL != "" && oldImageURL != imageURL {
		s.deleteFileQuietly(ctx, oldImageURL)
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.requireMember(ctx, project.WorkspaceID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithField("project_id", id).WithField("error", err.Error()).Error("Failed to delete project")
		return err
	}

	s.deleteFileQuietly(ctx, project.ImageURL)
	return nil
}

func (s *ProjectService) deleteFileQuietly(ctx context.Context, fileURL string) {
	if fileURL == "" {
		return
	}
	if err := s.fileStorage.DeleteByURL(ctx, fileURL); err != nil {
		s.logger.WithField("file_url", fileURL).WithField("error", err.Error()).Warn("Failed to delete stored file")
	}
}
