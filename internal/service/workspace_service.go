package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/pkg/logger"
	"github.com/boardstack/boardstack/pkg/storage"
)

// WorkspaceService owns workspace lifecycle and membership. Every mutation
// resolves the caller's membership first; the cardinality guards themselves
// are evaluated inside the repository's transactions.
type WorkspaceService struct {
	repo        domain.WorkspaceRepository
	authService domain.AuthService
	fileStorage storage.FileStorage
	logger      logger.Logger
}

func NewWorkspaceService(
	repo domain.WorkspaceRepository,
	authService domain.AuthService,
	fileStorage storage.FileStorage,
	logger logger.Logger,
) *WorkspaceService {
	return &WorkspaceService{
		repo:        repo,
		authService: authService,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

var _ domain.WorkspaceServiceInterface = (*WorkspaceService)(nil)

const inviteCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// generateInviteCode returns a random alphanumeric code of the given length.
func generateInviteCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		code[i] = inviteCodeCharset[n.Int64()]
	}
	return string(code), nil
}

// deleteFileQuietly issues a best-effort delete of a stored image reference
// after the primary transaction has committed. Failures are logged, never
// propagated.
func (s *WorkspaceService) deleteFileQuietly(ctx context.Context, fileURL string) {
	if fileURL == "" {
		return
	}
	if err := s.fileStorage.DeleteByURL(ctx, fileURL); err != nil {
		s.logger.WithField("file_url", fileURL).WithField("error", err.Error()).Warn("Failed to delete stored file")
	}
}

// ListWorkspaces returns all workspaces the caller belongs to.
func (s *WorkspaceService) ListWorkspaces(ctx context.Context) ([]*domain.Workspace, error) {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}

	workspaces, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		s.logger.WithField("user_id", user.ID).WithField("error", err.Error()).Error("Failed to list workspaces")
		return nil, err
	}
	return workspaces, nil
}

// GetWorkspace returns a workspace with its members if the caller is one of them.
func (s *WorkspaceService) GetWorkspace(ctx context.Context, id string) (*domain.WorkspaceWithMembers, error) {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetMember(ctx, id, user.ID); err != nil {
		return nil, err
	}

	workspace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.WorkspaceWithMembers{
		Workspace: *workspace,
		Members:   members,
	}, nil
}

// GetWorkspaceInfo returns the public identity of a workspace (invite
// landing page). No membership gate, and the invite code is stripped.
func (s *WorkspaceService) GetWorkspaceInfo(ctx context.Context, id string) (*domain.Workspace, error) {
	workspace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	workspace.InviteCode = ""
	return workspace, nil
}

// CreateWorkspace creates a workspace with the caller as its first ADMIN.
// Both rows are written in one transaction.
func (s *WorkspaceService) CreateWorkspace(ctx context.Context, name, imageURL string) (*domain.Workspace, error) {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}

	inviteCode, err := generateInviteCode(domain.InviteCodeLength)
	if err != nil {
		return nil, err
	}

	workspace := &domain.Workspace{
		ID:         uuid.New().String(),
		Name:       name,
		ImageURL:   imageURL,
		InviteCode: inviteCode,
	}
	if err := workspace.Validate(); err != nil {
		return nil, err
	}

	creator := &domain.Member{
		ID:          uuid.New().String(),
		WorkspaceID: workspace.ID,
		UserID:      user.ID,
		Role:        domain.RoleAdmin,
	}

	if err := s.repo.Create(ctx, workspace, creator); err != nil {
		s.logger.WithField("workspace_id", workspace.ID).WithField("error", err.Error()).Error("Failed to create workspace")
		return nil, err
	}

	return workspace, nil
}

// UpdateWorkspace renames a workspace or replaces its image. ADMIN only.
func (s *WorkspaceService) UpdateWorkspace(ctx context.Context, id, name, imageURL string) (*domain.Workspace, error) {
	member, err := s.requireAdmin(ctx, id)
	if err != nil {
		return nil, err
	}

	workspace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImageURL := workspace.ImageURL
	workspace.Name = name
	workspace.ImageURL = imageURL
	if err := workspace.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, workspace); err != nil {
		s.logger.WithField("workspace_id", id).WithField("user_id", member.UserID).WithField("error", err.Error()).Error("Failed to update workspace")
		return nil, err
	}

	if oldImageURL != "" && oldImageURL != imageURL {
		s.deleteFileQuietly(ctx, oldImageURL)
	}

	return workspace, nil
}

// DeleteWorkspace removes the workspace and its cascade subtree. ADMIN only.
func (s *WorkspaceService) DeleteWorkspace(ctx context.Context, id string) error {
	if _, err := s.requireAdmin(ctx, id); err != nil {
		return err
	}

	workspace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithField("workspace_id", id).WithField("error", err.Error()).Error("Failed to delete workspace")
		return err
	}

	s.deleteFileQuietly(ctx, workspace.ImageURL)
	return nil
}

// ResetInviteCode rotates the invite code, invalidating outstanding invites.
// ADMIN only.
func (s *WorkspaceService) ResetInviteCode(ctx context.Context, id string) (*domain.Workspace, error) {
	if _, err := s.requireAdmin(ctx, id); err != nil {
		return nil, err
	}

	workspace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inviteCode, err := generateInviteCode(domain.InviteCodeLength)
	if err != nil {
		return nil, err
	}
	workspace.InviteCode = inviteCode

	if err := s.repo.Update(ctx, workspace); err != nil {
		s.logger.WithField("workspace_id", id).WithField("error", err.Error()).Error("Failed to reset invite code")
		return nil, err
	}
	return workspace, nil
}

// JoinWorkspace adds the caller as a MEMBER when the invite code matches.
func (s *WorkspaceService) JoinWorkspace(ctx context.Context, id, code string) (*domain.Workspace, error) {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}

	workspace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if workspace.InviteCode != code {
		return nil, domain.NewValidationError("invalid invite code")
	}

	member := &domain.Member{
		ID:          uuid.New().String(),
		WorkspaceID: id,
		UserID:      user.ID,
		Role:        domain.RoleMember,
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	return workspace, nil
}

// ListMembers returns the workspace's members with user display fields.
func (s *WorkspaceService) ListMembers(ctx context.Context, workspaceID string) ([]*domain.MemberWithUser, error) {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetMember(ctx, workspaceID, user.ID); err != nil {
		return nil, err
	}

	return s.repo.ListMembers(ctx, workspaceID)
}

// RemoveMember deletes a membership. The caller must be removing themselves
// or hold ADMIN in the same workspace; the last-member guard runs inside
// the repository's transaction.
func (s *WorkspaceService) RemoveMember(ctx context.Context, memberID string) error {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return err
	}

	target, err := s.repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}

	caller, err := s.repo.GetMember(ctx, target.WorkspaceID, user.ID)
	if err != nil {
		return err
	}

	if caller.ID != target.ID && !caller.IsAdmin() {
		return &domain.ErrForbidden{Message: "only admins can remove other members"}
	}

	if err := s.repo.RemoveMember(ctx, memberID); err != nil {
		s.logger.WithField("member_id", memberID).WithField("workspace_id", target.WorkspaceID).WithField("error", err.Error()).Error("Failed to remove member")
		return err
	}
	return nil
}

// UpdateMemberRole changes a member's role. ADMIN only; the last-admin
// guard runs inside the repository's transaction.
func (s *WorkspaceService) UpdateMemberRole(ctx context.Context, memberID string, role domain.MemberRole) error {
	if err := role.Validate(); err != nil {
		return err
	}

	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return err
	}

	target, err := s.repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}

	caller, err := s.repo.GetMember(ctx, target.WorkspaceID, user.ID)
	if err != nil {
		return err
	}

	if !caller.IsAdmin() {
		return &domain.ErrForbidden{Message: "only admins can change member roles"}
	}

	if err := s.repo.UpdateMemberRole(ctx, memberID, role); err != nil {
		s.logger.WithField("member_id", memberID).WithField("workspace_id", target.WorkspaceID).WithField("error", err.Error()).Error("Failed to update member role")
		return err
	}
	return nil
}

// requireAdmin resolves the caller's membership in the workspace and
// demands the ADMIN role.
func (s *WorkspaceService) requireAdmin(ctx context.Context, workspaceID string) (*domain.Member, error) {
	user, err := s.authService.AuthenticateUserFromContext(ctx)
	if err != nil {
		return nil, err
	}

	member, err := s.repo.GetMember(ctx, workspaceID, user.ID)
	if err != nil {
		return nil, err
	}

	if !member.IsAdmin() {
		return nil, &domain.ErrForbidden{Message: "admin role required"}
	}
	return member, nil
}
