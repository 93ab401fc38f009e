package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/asaskevich/govalidator"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/boardstack/boardstack/config"
	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/pkg/logger"
)

// AuthService issues and verifies session tokens and owns the
// registration/login flow. OAuth sign-ins land here through the same token
// surface; the provider handshake itself happens in the excluded layer.
type AuthService struct {
	userRepo domain.UserRepository
	logger   logger.Logger
	secret   []byte
	duration time.Duration
}

func NewAuthService(userRepo domain.UserRepository, logger logger.Logger, cfg config.SecurityConfig) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
		secret:   []byte(cfg.JWTSecret),
		duration: cfg.SessionDuration,
	}
}

var _ domain.AuthService = (*AuthService)(nil)

// validatePassword mirrors the sign-up form's policy: minimum 8 characters
// with upper, lower and digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return domain.NewValidationError("password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return domain.NewValidationError("password must contain an uppercase letter, a lowercase letter and a number")
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResponse, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if !govalidator.IsEmail(input.Email) {
		return nil, domain.NewValidationError("email is invalid")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		s.logger.WithField("email", input.Email).WithField("error", err.Error()).Error("Failed to create user")
		return nil, err
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.AuthResponse, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		// provisioned through an external provider, no local password
		return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid credentials"}
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *domain.User) (*domain.AuthResponse, error) {
	expiresAt := time.Now().UTC().Add(s.duration)

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().UTC().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domain.AuthResponse{
		Token:     signed,
		User:      *user,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyToken validates a session token and extracts its identity claims.
func (s *AuthService) VerifyToken(tokenString string) (*domain.AuthenticatedUser, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "invalid or expired token"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &domain.ErrUnauthorized{Message: "invalid token claims"}
	}
	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return nil, &domain.ErrUnauthorized{Message: "token missing user identity"}
	}

	return &domain.AuthenticatedUser{ID: userID, Email: email}, nil
}

// AuthenticateUserFromContext resolves the caller the middleware stored in
// the request context. An anonymous request fails every protected
// operation here, with ErrUnauthorized.
func (s *AuthService) AuthenticateUserFromContext(ctx context.Context) (*domain.User, error) {
	userID, ok := ctx.Value(domain.UserIDKey).(string)
	if !ok || userID == "" {
		return nil, &domain.ErrUnauthorized{Message: "not authenticated"}
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, &domain.ErrUnauthorized{Message: "not authenticated"}
		}
		return nil, err
	}
	return user, nil
}
