package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/pkg/logger"
)

// AnalyticsService computes month-over-month dashboard metrics for a
// workspace or a single project. The two month windows are counted
// concurrently; both reads are against the same scope, only the window
// differs.
type AnalyticsService struct {
	repo          domain.AnalyticsRepository
	projectRepo   domain.ProjectRepository
	workspaceRepo domain.WorkspaceRepository
	authService   domain.AuthService
	logger        logger.Logger

	// now is swappable in tests
	now func() time.Time
}

func NewAnalyticsService(
	repo domain.AnalyticsRepository,
	projectRepo domain.ProjectRepository,
	workspaceRepo domain.WorkspaceRepository,
	authService domain.AuthService,
	logger logger.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		repo:          repo,
		projectRepo:   projectRepo,
		workspaceRepo: workspaceRepo,
		authService:   authService,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

var _ domain.AnalyticsServiceInterface = (*AnalyticsService)(nil)

// WorkspaceAnalytics aggregates across every project in the workspace.
func (s *AnalyticsService) WorkspaceAnalytics(ctx context.Context, workspaceID string) (*domain.Analytics, error) {
	return s.compute(ctx, workspaceID, "")
}

// ProjectAnalytics aggregates one project. The membership gate runs against
// the project's owning workspace.
func (s *AnalyticsService) ProjectAnalytics(ctx context.Context, projectID string) (*domain.Analytics, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.compute(ctx, project.WorkspaceID, projectID)
}

func (s *AnalyticsService) compute(ctx context.Context, workspaceID, projectID string) (*domain.Analytics, error) {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.workspaceRepo.GetMember(ctx, workspaceID, user.ID); err != nil {
		return nil, err
	}

	scope := domain.AnalyticsScope{
		WorkspaceID: workspaceID,
		ProjectID:   projectID,
		AssigneeID:  user.ID,
	}
	now := s.now()

	var current, previous domain.TaskCounts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.repo.CountTasks(gctx, scope, domain.CurrentMonthWindow(now))
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.repo.CountTasks(gctx, scope, domain.PreviousMonthWindow(now))
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.WithField("workspace_id", workspaceID).WithField("error", err.Error()).Error("Failed to compute analytics")
		return nil, err
	}

	return domain.Diff(current, previous), nil
}
