package domain

import (
	"context"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_user_repository.go -package mocks github.com/boardstack/boardstack/internal/domain UserRepository
//go:generate mockgen -destination mocks/mock_auth_service.go -package mocks github.com/boardstack/boardstack/internal/domain AuthService

// Key for storing authenticated request data in context
type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

// User represents a registered account. PasswordHash is empty for accounts
// provisioned through an external identity provider.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Validate performs validation on the user fields
func (u *User) Validate() error {
	if u.ID == "" {
		return NewValidationError("user id is required")
	}
	if !govalidator.IsEmail(u.Email) {
		return NewValidationError("user email is invalid")
	}
	if u.Name == "" {
		return NewValidationError("user name is required")
	}
	if len(u.Name) > 255 {
		return NewValidationError("user name length must be between 1 and 255")
	}
	return nil
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthenticatedUser is the identity the middleware resolves for a request.
type AuthenticatedUser struct {
	ID    string
	Email string
}

// AuthService is the identity surface consumed by every protected operation.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)

	// AuthenticateUserFromContext resolves the caller set by the HTTP
	// middleware. Absence yields ErrUnauthorized.
	AuthenticateUserFromContext(ctx context.Context) (*User, error)

	// VerifyToken validates a session token and returns its identity claims.
	VerifyToken(token string) (*AuthenticatedUser, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}
