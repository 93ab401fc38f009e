package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/boardstack/boardstack/internal/domain"
)

// TokenVerifier validates a bearer token and returns the identity it carries.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.AuthenticatedUser, error)
}

// AuthMiddleware guards routes behind a valid session token.
type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth verifies the Authorization header and stores the caller's
// identity in the request context. Downstream services re-resolve the user
// row from there.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeAuthError(w, "Invalid authorization header format")
			return
		}

		user, err := m.verifier.VerifyToken(parts[1])
		if err != nil {
			writeAuthError(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), domain.UserIDKey, user.ID)
		ctx = context.WithValue(ctx, domain.UserEmailKey, user.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
