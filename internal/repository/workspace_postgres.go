package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/boardstack/boardstack/internal/domain"
)

type workspaceRepository struct {
	db *sql.DB
}

// NewWorkspaceRepository creates a new PostgreSQL workspace repository
func NewWorkspaceRepository(db *sql.DB) domain.WorkspaceRepository {
	return &workspaceRepository{db: db}
}

// Create inserts the workspace and its creator's ADMIN membership in one
// transaction, so a workspace can never exist without at least one admin.
func (r *workspaceRepository) Create(ctx context.Context, workspace *domain.Workspace, creator *domain.Member) error {
	now := time.Now().UTC()
	workspace.CreatedAt = now
	workspace.UpdatedAt = now
	creator.CreatedAt = now
	creator.UpdatedAt = now

	return withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		workspaceQuery := `
			INSERT INTO workspaces (id, name, image_url, invite_code, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err := tx.ExecContext(ctx, workspaceQuery,
			workspace.ID,
			workspace.Name,
			nullString(workspace.ImageURL),
			workspace.InviteCode,
			workspace.CreatedAt,
			workspace.UpdatedAt,
		)
		if err != nil {
			return &domain.ErrStorage{Op: "create workspace", Err: err}
		}

		memberQuery := `
			INSERT INTO members (id, workspace_id, user_id, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err = tx.ExecContext(ctx, memberQuery,
			creator.ID,
			creator.WorkspaceID,
			creator.UserID,
			creator.Role,
			creator.CreatedAt,
			creator.UpdatedAt,
		)
		if err != nil {
			return &domain.ErrStorage{Op: "create workspace admin", Err: err}
		}
		return nil
	})
}

func (r *workspaceRepository) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	query := `
		SELECT id, name, image_url, invite_code, created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`
	workspace, err := domain.ScanWorkspace(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "workspace", ID: id}
	}
	if err != nil {
		return nil, &domain.ErrStorage{Op: "get workspace", Err: err}
	}
	return workspace, nil
}

func (r *workspaceRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.image_url, w.invite_code, w.created_at, w.updated_at
		FROM workspaces w
		JOIN members m ON m.workspace_id = w.id
		WHERE m.user_id = $1
		ORDER BY w.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, &domain.ErrStorage{Op: "list workspaces", Err: err}
	}
	defer rows.Close()

	workspaces := []*domain.Workspace{}
	for rows.Next() {
		workspace, err := domain.ScanWorkspace(rows)
		if err != nil {
			return nil, &domain.ErrStorage{Op: "scan workspace", Err: err}
		}
		workspaces = append(workspaces, workspace)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.ErrStorage{Op: "list workspaces", Err: err}
	}
	return workspaces, nil
}

func (r *workspaceRepository) Update(ctx context.Context, workspace *domain.Workspace) error {
	workspace.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE workspaces
		SET name = $1, image_url = $2, invite_code = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		workspace.Name,
		nullString(workspace.ImageURL),
		workspace.InviteCode,
		workspace.UpdatedAt,
		workspace.ID,
	)
	if err != nil {
		return &domain.ErrStorage{Op: "update workspace", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return &domain.ErrStorage{Op: "update workspace", Err: err}
	}
	if rows == 0 {
		return &domain.ErrNotFound{Entity: "workspace", ID: workspace.ID}
	}
	return nil
}

// Delete removes the workspace row; members, projects and tasks go with it
// through the schema's ON DELETE CASCADE.
func (r *workspaceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return &domain.ErrStorage{Op: "delete workspace", Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return &domain.ErrStorage{Op: "delete workspace", Err: err}
	}
	if rows == 0 {
		return &domain.ErrNotFound{Entity: "workspace", ID: id}
	}
	return nil
}

func (r *workspaceRepository) GetMember(ctx context.Context, workspaceID, userID string) (*domain.Member, error) {
	query := `
		SELECT id, workspace_id, user_id, role, created_at, updated_at
		FROM members
		WHERE workspace_id = $1 AND user_id = $2
	`
	var m domain.Member
	err := r.db.QueryRowContext(ctx, query, workspaceID, userID).Scan(
		&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrUnauthorized{Message: "user is not a member of the workspace"}
	}
	if err != nil {
		return nil, &domain.ErrStorage{Op: "get member", Err: err}
	}
	return &m, nil
}

func (r *workspaceRepository) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `
		SELECT id, workspace_id, user_id, role, created_at, updated_at
		FROM members
		WHERE id = $1
	`
	var m domain.Member
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(
		&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "member", ID: memberID}
	}
	if err != nil {
		return nil, &domain.ErrStorage{Op: "get member", Err: err}
	}
	return &m, nil
}

func (r *workspaceRepository) ListMembers(ctx context.Context, workspaceID string) ([]*domain.MemberWithUser, error) {
	query := `
		SELECT m.id, m.workspace_id, m.user_id, m.role, m.created_at, m.updated_at, u.name, u.email
		FROM members m
		JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = $1
		ORDER BY m.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		return nil, &domain.ErrStorage{Op: "list members", Err: err}
	}
	defer rows.Close()

	members := []*domain.MemberWithUser{}
	for rows.Next() {
		var m domain.MemberWithUser
		err := rows.Scan(
			&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt,
			&m.Name, &m.Email,
		)
		if err != nil {
			return nil, &domain.ErrStorage{Op: "scan member", Err: err}
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.ErrStorage{Op: "list members", Err: err}
	}
	return members, nil
}

func (r *workspaceRepository) AddMember(ctx context.Context, member *domain.Member) error {
	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now

	query := `
		INSERT INTO members (id, workspace_id, user_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		member.ID,
		member.WorkspaceID,
		member.UserID,
		member.Role,
		member.CreatedAt,
		member.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.NewValidationError("user is already a member of the workspace")
		}
		return &domain.ErrStorage{Op: "add member", Err: err}
	}
	return nil
}

// lockMembers takes FOR UPDATE locks on every member row of the workspace
// and returns the total and admin counts. Guard decisions made on these
// counts hold until the transaction commits: a concurrent removal on the
// same workspace blocks here instead of racing past the guard.
func lockMembers(ctx context.Context, tx *sql.Tx, workspaceID string) (total, admins int, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE role = 'ADMIN')
		FROM (
			SELECT role FROM members WHERE workspace_id = $1 FOR UPDATE
		) locked
	`
	if err := tx.QueryRowContext(ctx, query, workspaceID).Scan(&total, &admins); err != nil {
		return 0, 0, &domain.ErrStorage{Op: "lock members", Err: err}
	}
	return total, admins, nil
}

// RemoveMember deletes a member, failing inside the transaction when the
// target is the workspace's only member.
func (r *workspaceRepository) RemoveMember(ctx context.Context, memberID string) error {
	return withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		var workspaceID string
		err := tx.QueryRowContext(ctx,
			`SELECT workspace_id FROM members WHERE id = $1 FOR UPDATE`, memberID,
		).Scan(&workspaceID)
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.ErrNotFound{Entity: "member", ID: memberID}
		}
		if err != nil {
			return &domain.ErrStorage{Op: "remove member", Err: err}
		}

		total, _, err := lockMembers(ctx, tx, workspaceID)
		if err != nil {
			return err
		}
		if total == 1 {
			return &domain.ErrInvariantViolation{Rule: "last member"}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, memberID); err != nil {
			return &domain.ErrStorage{Op: "remove member", Err: err}
		}
		return nil
	})
}

// UpdateMemberRole changes a member's role, failing inside the transaction
// when the change would downgrade the workspace's only admin.
func (r *workspaceRepository) UpdateMemberRole(ctx context.Context, memberID string, role domain.MemberRole) error {
	return withTransaction(ctx, r.db, func(tx *sql.Tx) error {
		var workspaceID string
		var currentRole domain.MemberRole
		err := tx.QueryRowContext(ctx,
			`SELECT workspace_id, role FROM members WHERE id = $1 FOR UPDATE`, memberID,
		).Scan(&workspaceID, &currentRole)
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.ErrNotFound{Entity: "member", ID: memberID}
		}
		if err != nil {
			return &domain.ErrStorage{Op: "update member role", Err: err}
		}

		_, admins, err := lockMembers(ctx, tx, workspaceID)
		if err != nil {
			return err
		}
		if currentRole == domain.RoleAdmin && role == domain.RoleMember && admins == 1 {
			return &domain.ErrInvariantViolation{Rule: "last admin"}
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE members SET role = $1, updated_at = $2 WHERE id = $3`,
			role, time.Now().UTC(), memberID,
		)
		if err != nil {
			return &domain.ErrStorage{Op: "update member role", Err: err}
		}
		return nil
	})
}
