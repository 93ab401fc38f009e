package service

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/internal/domain/mocks"
)

type analyticsServiceMocks struct {
	repo          *mocks.MockAnalyticsRepository
	projectRepo   *mocks.MockProjectRepository
	workspaceRepo *mocks.MockWorkspaceRepository
	auth          *mocks.MockAuthService
}

func newAnalyticsService(ctrl *gomock.Controller, now time.Time) (*AnalyticsService, analyticsServiceMocks) {
	m := analyticsServiceMocks{
		repo:          mocks.NewMockAnalyticsRepository(ctrl),
		projectRepo:   mocks.NewMockProjectRepository(ctrl),
		workspaceRepo: mocks.NewMockWorkspaceRepository(ctrl),
		auth:          mocks.NewMockAuthService(ctrl),
	}
	svc := NewAnalyticsService(m.repo, m.projectRepo, m.workspaceRepo, m.auth, testLogger(ctrl))
	svc.now = func() time.Time { return now }
	return svc, m
}

func TestAnalyticsService_WorkspaceAnalytics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	svc, m := newAnalyticsService(ctrl, now)
	ctx := authedContext("u1")

	t.Run("counts both month windows and diffs them", func(t *testing.T) {
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").Return(member("m1", "ws1", "u1", domain.RoleMember), nil)

		scope := domain.AnalyticsScope{WorkspaceID: "ws1", AssigneeID: "u1"}
		m.repo.EXPECT().CountTasks(gomock.Any(), scope, domain.CurrentMonthWindow(now)).
			Return(domain.TaskCounts{Total: 10, Assigned: 4, Incomplete: 6, Completed: 4, Overdue: 2}, nil)
		m.repo.EXPECT().CountTasks(gomock.Any(), scope, domain.PreviousMonthWindow(now)).
			Return(domain.TaskCounts{Total: 7, Assigned: 5, Incomplete: 3, Completed: 4, Overdue: 1}, nil)

		analytics, err := svc.WorkspaceAnalytics(ctx, "ws1")
		require.NoError(t, err)
		assert.Equal(t, 10, analytics.TaskCount)
		assert.Equal(t, 3, analytics.TaskDifference)
		assert.Equal(t, -1, analytics.AssignedTaskDifference)
		assert.Equal(t, 0, analytics.CompletedTaskDifference)
		assert.Equal(t, 1, analytics.OverdueTaskDifference)
	})

	t.Run("non-member is blocked before any counting", func(t *testing.T) {
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").
			Return(nil, &domain.ErrUnauthorized{Message: "user is not a member of the workspace"})

		_, err := svc.WorkspaceAnalytics(ctx, "ws1")
		var unauthorized *domain.ErrUnauthorized
		assert.ErrorAs(t, err, &unauthorized)
	})

	t.Run("count failure propagates", func(t *testing.T) {
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").Return(member("m1", "ws1", "u1", domain.RoleMember), nil)
		m.repo.EXPECT().CountTasks(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.TaskCounts{}, assert.AnError).MinTimes(1).MaxTimes(2)

		_, err := svc.WorkspaceAnalytics(ctx, "ws1")
		assert.Error(t, err)
	})
}

func TestAnalyticsService_ProjectAnalytics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	svc, m := newAnalyticsService(ctrl, now)
	ctx := authedContext("u1")

	t.Run("gates on the project's owning workspace", func(t *testing.T) {
		m.projectRepo.EXPECT().GetByID(ctx, "proj1").
			Return(&domain.Project{ID: "proj1", WorkspaceID: "ws1", Name: "Roadmap"}, nil)
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").Return(member("m1", "ws1", "u1", domain.RoleMember), nil)

		scope := domain.AnalyticsScope{WorkspaceID: "ws1", ProjectID: "proj1", AssigneeID: "u1"}
		m.repo.EXPECT().CountTasks(gomock.Any(), scope, domain.CurrentMonthWindow(now)).
			Return(domain.TaskCounts{Total: 3}, nil)
		m.repo.EXPECT().CountTasks(gomock.Any(), scope, domain.PreviousMonthWindow(now)).
			Return(domain.TaskCounts{Total: 5}, nil)

		analytics, err := svc.ProjectAnalytics(ctx, "proj1")
		require.NoError(t, err)
		assert.Equal(t, 3, analytics.TaskCount)
		assert.Equal(t, -2, analytics.TaskDifference)
	})

	t.Run("missing project", func(t *testing.T) {
		m.projectRepo.EXPECT().GetByID(ctx, "ghost").
			Return(nil, &domain.ErrNotFound{Entity: "project", ID: "ghost"})

		_, err := svc.ProjectAnalytics(ctx, "ghost")
		var notFound *domain.ErrNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}
