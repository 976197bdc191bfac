package middleware

import (
	"context"
	"net/http"
	"strings"

	"doctor-finder/internal/domain/entity"
	"doctor-finder/internal/usecase"
	"doctor-finder/pkg/response"
)

type contextKey string

const (
	ClientIDKey contextKey = "client_id"
	UserKey     contextKey = "user"
)

type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthMiddleware(authUsecase usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
	}
}

// Authenticate admits requests carrying the current session token of their
// client. Everything else is turned away towards the login page.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID, ok := GetClientIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Client ID is required")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		user, err := m.authUsecase.Authorize(r.Context(), clientID, parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok && user != nil
}
