package service

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/internal/domain/mocks"
)

type projectServiceMocks struct {
	repo          *mocks.MockProjectRepository
	workspaceRepo *mocks.MockWorkspaceRepository
	auth          *mocks.MockAuthService
	storage       *mocks.MockFileStorage
}

func newProjectService(ctrl *gomock.Controller) (*ProjectService, projectServiceMocks) {
	m := projectServiceMocks{
		repo:          mocks.NewMockProjectRepository(ctrl),
		workspaceRepo: mocks.NewMockWorkspaceRepository(ctrl),
		auth:          mocks.NewMockAuthService(ctrl),
		storage:       mocks.NewMockFileStorage(ctrl),
	}
	svc := NewProjectService(m.repo, m.workspaceRepo, m.auth, m.storage, testLogger(ctrl))
	return svc, m
}

func TestProjectService_CreateProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newProjectService(ctrl)
	ctx := authedContext("u1")

	t.Run("member creates a project", func(t *testing.T) {
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").Return(member("m1", "ws1", "u1", domain.RoleMember), nil)
		m.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ interface{}, project *domain.Project) error {
				assert.NotEmpty(t, project.ID)
				assert.Equal(t, "ws1", project.WorkspaceID)
				return nil
			})

		project, err := svc.CreateProject(ctx, "ws1", "Roadmap", "")
		require.NoError(t, err)
		assert.Equal(t, "Roadmap", project.Name)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").Return(member("m1", "ws1", "u1", domain.RoleMember), nil)

		_, err := svc.CreateProject(ctx, "ws1", "", "")
		var validation domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("non-member is blocked", func(t *testing.T) {
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").
			Return(nil, &domain.ErrUnauthorized{Message: "user is not a member of the workspace"})

		_, err := svc.CreateProject(ctx, "ws1", "Roadmap", "")
		var unauthorized *domain.ErrUnauthorized
		assert.ErrorAs(t, err, &unauthorized)
	})
}

func TestProjectService_GetProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newProjectService(ctrl)
	ctx := authedContext("u1")

	project := &domain.Project{ID: "proj1", WorkspaceID: "ws1", Name: "Roadmap"}

	t.Run("gate runs against the owning workspace", func(t *testing.T) {
		m.repo.EXPECT().GetByID(ctx, "proj1").Return(project, nil)
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").
			Return(nil, &domain.ErrUnauthorized{Message: "user is not a member of the workspace"})

		_, err := svc.GetProject(ctx, "proj1")
		var unauthorized *domain.ErrUnauthorized
		assert.ErrorAs(t, err, &unauthorized)
	})

	t.Run("member reads the project", func(t *testing.T) {
		m.repo.EXPECT().GetByID(ctx, "proj1").Return(project, nil)
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").Return(member("m1", "ws1", "u1", domain.RoleMember), nil)

		got, err := svc.GetProject(ctx, "proj1")
		require.NoError(t, err)
		assert.Equal(t, "proj1", got.ID)
	})
}

func TestProjectService_UpdateProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newProjectService(ctrl)
	ctx := authedContext("u1")

	t.Run("replacing the image deletes the old file", func(t *testing.T) {
		m.repo.EXPECT().GetByID(ctx, "proj1").
			Return(&domain.Project{ID: "proj1", WorkspaceID: "ws1", Name: "Roadmap", ImageURL: "https://cdn.example.com/old.png"}, nil)
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").Return(member("m1", "ws1", "u1", domain.RoleMember), nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		m.storage.EXPECT().DeleteByURL(ctx, "https://cdn.example.com/old.png").Return(nil)

		project, err := svc.UpdateProject(ctx, "proj1", "Roadmap v2", "https://cdn.example.com/new.png")
		require.NoError(t, err)
		assert.Equal(t, "Roadmap v2", project.Name)
		assert.Equal(t, "https://cdn.example.com/new.png", project.ImageURL)
	})

	t.Run("unchanged image keeps the file", func(t *testing.T) {
		m.repo.EXPECT().GetByID(ctx, "proj1").
			Return(&domain.Project{ID: "proj1", WorkspaceID: "ws1", Name: "Roadmap", ImageURL: "https://cdn.example.com/old.png"}, nil)
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").Return(member("m1", "ws1", "u1", domain.RoleMember), nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		_, err := svc.UpdateProject(ctx, "proj1", "Roadmap", "https://cdn.example.com/old.png")
		require.NoError(t, err)
	})

	t.Run("storage cleanup failure does not fail the update", func(t *testing.T) {
		m.repo.EXPECT().GetByID(ctx, "proj1").
			Return(&domain.Project{ID: "proj1", WorkspaceID: "ws1", Name: "Roadmap", ImageURL: "https://cdn.example.com/old.png"}, nil)
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").Return(member("m1", "ws1", "u1", domain.RoleMember), nil)
		m.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		m.storage.EXPECT().DeleteByURL(ctx, "https://cdn.example.com/old.png").Return(assert.AnError)

		_, err := svc.UpdateProject(ctx, "proj1", "Roadmap", "")
		assert.NoError(t, err)
	})
}

func TestProjectService_DeleteProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newProjectService(ctrl)
	ctx := authedContext("u1")

	t.Run("deletes the project and its image", func(t *testing.T) {
		m.repo.EXPECT().GetByID(ctx, "proj1").
			Return(&domain.Project{ID: "proj1", WorkspaceID: "ws1", Name: "Roadmap", ImageURL: "https://cdn.example.com/cover.png"}, nil)
		m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
		m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").Return(member("m1", "ws1", "u1", domain.RoleMember), nil)
		m.repo.EXPECT().Delete(ctx, "proj1").Return(nil)
		m.storage.EXPECT().DeleteByURL(ctx, "https://cdn.example.com/cover.png").Return(nil)

		assert.NoError(t, svc.DeleteProject(ctx, "proj1"))
	})

	t.Run("missing project", func(t *testing.T) {
		m.repo.EXPECT().GetByID(ctx, "ghost").Return(nil, &domain.ErrNotFound{Entity: "project", ID: "ghost"})

		var notFound *domain.ErrNotFound
		assert.ErrorAs(t, svc.DeleteProject(ctx, "ghost"), &notFound)
	})
}

func TestProjectService_ListProjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newProjectService(ctrl)
	ctx := authedContext("u1")

	m.auth.EXPECT().AuthenticateUserFromContext(ctx).Return(&domain.User{ID: "u1"}, nil)
	m.workspaceRepo.EXPECT().GetMember(ctx, "ws1", "u1").Return(member("m1", "ws1", "u1", domain.RoleMember), nil)
	m.repo.EXPECT().ListByWorkspace(ctx, "ws1").Return([]*domain.Project{{ID: "proj1"}, {ID: "proj2"}}, nil)

	projects, err := svc.ListProjects(ctx, "ws1")
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}
