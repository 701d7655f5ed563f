package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baharkarakas/tours-backend/internal/api/httpx"
	"github.com/baharkarakas/tours-backend/internal/auth"
	"github.com/baharkarakas/tours-backend/internal/models"
	repo "github.com/baharkarakas/tours-backend/internal/repository"
)

type userKey struct{}

// CurrentUser returns the authenticated user placed in the context by Auth.
func CurrentUser(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey{}).(models.User)
	return u, ok
}

// UserLoader is the slice of the user service the middleware needs.
type UserLoader interface {
	Get(ctx context.Context, id string, f repo.UserFilter) (models.User, error)
}

type AuthMiddleware struct {
	tm    *auth.TokenManager
	users UserLoader
}

func NewAuthMiddleware(tm *auth.TokenManager, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{tm: tm, users: users}
}

// OptionalAuth loads the user into context when a valid bearer token is
// present and silently continues otherwise. Used on public read routes so
// privileged callers can override default visibility filters.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := m.tm.Parse(strings.TrimSpace(ah[len("Bearer "):]))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		u, err := m.users.Get(r.Context(), claims.UserID, repo.UserFilter{})
		if err != nil || (claims.IssuedAt != nil && u.ChangedPasswordAfter(claims.IssuedAt.Unix())) {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, u)))
	})
}

// Auth parses the bearer token, loads the account and rejects the request if
// the account was deactivated or changed its password after the token was
// issued. The loaded user is placed in the request context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "auth_error", "missing bearer token", nil)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, err := m.tm.Parse(token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "auth_error", "invalid or expired token", nil)
			return
		}
		// Default filter: a deactivated account no longer authenticates.
		u, err := m.users.Get(r.Context(), claims.UserID, repo.UserFilter{})
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "auth_error", "account no longer exists", nil)
			return
		}
		if claims.IssuedAt != nil && u.ChangedPasswordAfter(claims.IssuedAt.Unix()) {
			httpx.WriteError(w, http.StatusUnauthorized, "auth_error", "password changed after token was issued", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, u)))
	})
}
