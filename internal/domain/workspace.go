package domain

import (
	"context"
	"database/sql"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_workspace_repository.go -package mocks github.com/boardstack/boardstack/internal/domain WorkspaceRepository
//go:generate mockgen -destination mocks/mock_workspace_service.go -package mocks github.com/boardstack/boardstack/internal/domain WorkspaceServiceInterface

// MemberRole is the closed set of roles a workspace member can hold.
type MemberRole string

const (
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
)

// Validate checks that the role is one of the known variants.
func (r MemberRole) Validate() error {
	switch r {
	case RoleAdmin, RoleMember:
		return nil
	default:
		return NewValidationError("role must be either ADMIN or MEMBER")
	}
}

const InviteCodeLength = 6

// Workspace is the tenant boundary. Deleting a workspace cascades to its
// members, projects and tasks.
type Workspace struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	ImageURL   string    `json:"image_url,omitempty" db:"image_url"`
	InviteCode string    `json:"invite_code" db:"invite_code"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Validate performs validation on the workspace fields
func (w *Workspace) Validate() error {
	if w.ID == "" {
		return NewValidationError("workspace id is required")
	}
	if w.Name == "" {
		return NewValidationError("workspace name is required")
	}
	if len(w.Name) > 255 {
		return NewValidationError("workspace name length must be between 1 and 255")
	}
	if w.ImageURL != "" && !govalidator.IsURL(w.ImageURL) {
		return NewValidationError("workspace image URL is invalid")
	}
	if len(w.InviteCode) != InviteCodeLength || !govalidator.IsAlphanumeric(w.InviteCode) {
		return NewValidationError("workspace invite code must be 6 alphanumeric characters")
	}
	return nil
}

// Member is a user's role-scoped participation in one workspace.
// At most one row exists per (workspace, user) pair.
type Member struct {
	ID          string     `json:"id" db:"id"`
	WorkspaceID string     `json:"workspace_id" db:"workspace_id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Role        MemberRole `json:"role" db:"role"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Validate performs validation on the member fields
func (m *Member) Validate() error {
	if m.WorkspaceID == "" {
		return NewValidationError("member workspace_id is required")
	}
	if m.UserID == "" {
		return NewValidationError("member user_id is required")
	}
	return m.Role.Validate()
}

// IsAdmin reports whether the member holds the ADMIN role.
func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// MemberWithUser extends Member with the user's display fields.
type MemberWithUser struct {
	Member
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// WorkspaceWithMembers is the detail payload returned by workspaces.get.
type WorkspaceWithMembers struct {
	Workspace
	Members []*MemberWithUser `json:"members"`
}

// ScanWorkspace scans a workspace row.
func ScanWorkspace(scanner interface {
	Scan(dest ...interface{}) error
}) (*Workspace, error) {
	var w Workspace
	var imageURL sql.NullString
	if err := scanner.Scan(
		&w.ID,
		&w.Name,
		&imageURL,
		&w.InviteCode,
		&w.CreatedAt,
		&w.UpdatedAt,
	); err != nil {
		return nil, err
	}
	w.ImageURL = imageURL.String
	return &w, nil
}

type WorkspaceRepository interface {
	// Create persists the workspace and its first ADMIN member in a single
	// transaction: both rows are created or neither is.
	Create(ctx context.Context, workspace *Workspace, creator *Member) error

	GetByID(ctx context.Context, id string) (*Workspace, error)
	ListByUser(ctx context.Context, userID string) ([]*Workspace, error)
	Update(ctx context.Context, workspace *Workspace) error
	Delete(ctx context.Context, id string) error

	// GetMember resolves the (workspace, user) membership. Returns
	// ErrUnauthorized when no row exists; this is the single gate every
	// protected operation builds on.
	GetMember(ctx context.Context, workspaceID, userID string) (*Member, error)
	GetMemberByID(ctx context.Context, memberID string) (*Member, error)
	ListMembers(ctx context.Context, workspaceID string) ([]*MemberWithUser, error)
	AddMember(ctx context.Context, member *Member) error

	// RemoveMember deletes the member row, evaluating the last-member guard
	// inside the same transaction as the delete.
	RemoveMember(ctx context.Context, memberID string) error

	// UpdateMemberRole changes the member's role, evaluating the last-admin
	// guard inside the same transaction as the update.
	UpdateMemberRole(ctx context.Context, memberID string, role MemberRole) error
}

type WorkspaceServiceInterface interface {
	ListWorkspaces(ctx context.Context) ([]*Workspace, error)
	GetWorkspace(ctx context.Context, id string) (*WorkspaceWithMembers, error)
	GetWorkspaceInfo(ctx context.Context, id string) (*Workspace, error)
	CreateWorkspace(ctx context.Context, name, imageURL string) (*Workspace, error)
	UpdateWorkspace(ctx context.Context, id, name, imageURL string) (*Workspace, error)
	DeleteWorkspace(ctx context.Context, id string) error
	ResetInviteCode(ctx context.Context, id string) (*Workspace, error)
	JoinWorkspace(ctx context.Context, id, code string) (*Workspace, error)

	ListMembers(ctx context.Context, workspaceID string) ([]*MemberWithUser, error)
	RemoveMember(ctx context.Context, memberID string) error
	UpdateMemberRole(ctx context.Context, memberID string, role MemberRole) error
}
