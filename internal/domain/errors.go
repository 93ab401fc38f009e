package domain

import (
	"fmt"
)

// ErrNotFound is returned when a referenced entity does not exist.
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ErrUnauthorized is returned when the caller has no membership in the
// workspace that owns the target entity, or is not authenticated at all.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrForbidden is returned when the caller is a member but lacks the role
// the operation requires.
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	return e.Message
}

// ErrInvariantViolation is returned when a mutation would leave a workspace
// without its last member or last admin. Rule is "last member" or
// "last admin".
type ErrInvariantViolation struct {
	Rule string
}

func (e *ErrInvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Rule)
}

// ErrInvalidAssignee is returned when a task is assigned to a user who holds
// no membership in the task's workspace.
type ErrInvalidAssignee struct {
	UserID string
}

func (e *ErrInvalidAssignee) Error() string {
	return fmt.Sprintf("assignee %s is not a member of the workspace", e.UserID)
}

// ErrCrossWorkspaceBatch is returned when a bulk reorder references tasks
// from more than one workspace.
type ErrCrossWorkspaceBatch struct {
	Workspaces int
}

func (e *ErrCrossWorkspaceBatch) Error() string {
	return fmt.Sprintf("bulk update references tasks from %d workspaces, expected 1", e.Workspaces)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// ErrStorage wraps a persistence-layer failure. The core does not retry;
// retry policy, if any, belongs to the caller.
type ErrStorage struct {
	Op  string
	Err error
}

func (e *ErrStorage) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *ErrStorage) Unwrap() error {
	return e.Err
}
