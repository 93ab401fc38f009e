package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/boardstack/boardstack/config"
	"github.com/boardstack/boardstack/internal/domain"
	"github.com/boardstack/boardstack/internal/domain/mocks"
)

func newAuthService(t *testing.T, ctrl *gomock.Controller) (*AuthService, *mocks.MockUserRepository) {
	t.Helper()
	mockRepo := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(mockRepo, testLogger(ctrl), config.SecurityConfig{
		JWTSecret:       "test-secret",
		SessionDuration: time.Hour,
	})
	return svc, mockRepo
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newAuthService(t, ctrl)
	ctx := context.Background()

	t.Run("successful registration issues a token", func(t *testing.T) {
		mockRepo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, user *domain.User) error {
				assert.Equal(t, "jane@example.com", user.Email)
				assert.NotEmpty(t, user.ID)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Sup3rSecret")))
				return nil
			})

		resp, err := svc.Register(ctx, domain.RegisterInput{
			Name:     "Jane",
			Email:    "  Jane@Example.COM ",
			Password: "Sup3rSecret",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "jane@example.com", resp.User.Email)
		assert.True(t, resp.ExpiresAt.After(time.Now()))
	})

	t.Run("password policy", func(t *testing.T) {
		cases := []struct {
			name     string
			password string
		}{
			{"too short", "Ab1"},
			{"no uppercase", "alllower1"},
			{"no lowercase", "ALLUPPER1"},
			{"no digit", "NoDigitsHere"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Register(ctx, domain.RegisterInput{
					Name:     "Jane",
					Email:    "jane@example.com",
					Password: tc.password,
				})
				var validation domain.ValidationError
				assert.ErrorAs(t, err, &validation)
			})
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.Register(ctx, domain.RegisterInput{
			Name:     "Jane",
			Email:    "not-an-email",
			Password: "Sup3rSecret",
		})
		var validation domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("duplicate email propagates", func(t *testing.T) {
		mockRepo.EXPECT().CreateUser(ctx, gomock.Any()).
			Return(domain.NewValidationError("a user with this email already exists"))

		_, err := svc.Register(ctx, domain.RegisterInput{
			Name:     "Jane",
			Email:    "jane@example.com",
			Password: "Sup3rSecret",
		})
		var validation domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newAuthService(t, ctrl)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "u1", Email: "jane@example.com", Name: "Jane", PasswordHash: string(hash)}

	t.Run("successful login", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByEmail(ctx, "jane@example.com").Return(user, nil)

		resp, err := svc.Login(ctx, domain.LoginInput{Email: "Jane@example.com", Password: "Sup3rSecret"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByEmail(ctx, "jane@example.com").Return(user, nil)

		_, err := svc.Login(ctx, domain.LoginInput{Email: "jane@example.com", Password: "wrong"})
		var unauthorized *domain.ErrUnauthorized
		assert.ErrorAs(t, err, &unauthorized)
	})

	t.Run("unknown email maps to the same error as a bad password", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByEmail(ctx, "ghost@example.com").
			Return(nil, &domain.ErrNotFound{Entity: "user", ID: "ghost@example.com"})

		_, err := svc.Login(ctx, domain.LoginInput{Email: "ghost@example.com", Password: "whatever"})
		var unauthorized *domain.ErrUnauthorized
		require.ErrorAs(t, err, &unauthorized)
		assert.Equal(t, "invalid credentials", unauthorized.Message)
	})

	t.Run("externally provisioned account has no local password", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByEmail(ctx, "sso@example.com").
			Return(&domain.User{ID: "u2", Email: "sso@example.com"}, nil)

		_, err := svc.Login(ctx, domain.LoginInput{Email: "sso@example.com", Password: "anything"})
		var unauthorized *domain.ErrUnauthorized
		assert.ErrorAs(t, err, &unauthorized)
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newAuthService(t, ctrl)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		mockRepo.EXPECT().CreateUser(ctx, gomock.Any()).Return(nil)
		resp, err := svc.Register(ctx, domain.RegisterInput{
			Name:     "Jane",
			Email:    "jane@example.com",
			Password: "Sup3rSecret",
		})
		require.NoError(t, err)

		authed, err := svc.VerifyToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, authed.ID)
		assert.Equal(t, "jane@example.com", authed.Email)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.VerifyToken("not-a-token")
		var unauthorized *domain.ErrUnauthorized
		assert.ErrorAs(t, err, &unauthorized)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuthService(mockRepo, testLogger(ctrl), config.SecurityConfig{
			JWTSecret:       "other-secret",
			SessionDuration: time.Hour,
		})
		resp, err := other.issueToken(&domain.User{ID: "u1", Email: "jane@example.com"})
		require.NoError(t, err)

		_, err = svc.VerifyToken(resp.Token)
		var unauthorized *domain.ErrUnauthorized
		assert.ErrorAs(t, err, &unauthorized)
	})
}

func TestAuthService_AuthenticateUserFromContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newAuthService(t, ctrl)

	t.Run("resolves the user from context", func(t *testing.T) {
		ctx := authedContext("u1")
		mockRepo.EXPECT().GetUserByID(ctx, "u1").Return(&domain.User{ID: "u1"}, nil)

		user, err := svc.AuthenticateUserFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("anonymous context", func(t *testing.T) {
		_, err := svc.AuthenticateUserFromContext(context.Background())
		var unauthorized *domain.ErrUnauthorized
		assert.ErrorAs(t, err, &unauthorized)
	})

	t.Run("stale identity for a deleted user", func(t *testing.T) {
		ctx := authedContext("gone")
		mockRepo.EXPECT().GetUserByID(ctx, "gone").
			Return(nil, &domain.ErrNotFound{Entity: "user", ID: "gone"})

		_, err := svc.AuthenticateUserFromContext(ctx)
		var unauthorized *domain.ErrUnauthorized
		assert.ErrorAs(t, err, &unauthorized)
	})
}
