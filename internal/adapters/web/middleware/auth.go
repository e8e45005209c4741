package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
	"github.com/lcalzada-xor/scaudit/internal/core/services/audit"
)

type contextKey string

const UserContextKey contextKey = "user"

// AuthMiddleware ensures the request has a valid session.
func AuthMiddleware(authService ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get token from cookie
			cookie, err := r.Cookie("auth_token")
			var token string
			if err == nil {
				token = cookie.Value
			}

			// Fallback to Header (for API clients)
			if token == "" {
				authHeader := r.Header.Get("Authorization")
				if strings.HasPrefix(authHeader, "Bearer ") {
					token = strings.TrimPrefix(authHeader, "Bearer ")
				}
			}

			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := authService.ValidateToken(r.Context(), token)
			if err != nil {
				// Clear cookie if invalid
				http.SetCookie(w, &http.Cookie{
					Name:   "auth_token",
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
				http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
				return
			}

			// Add user to context, both for handlers and for audit attribution
			ctx := context.WithValue(r.Context(), UserContextKey, user)
			ctx = audit.WithUser(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleMiddleware checks if the user has the required role.
func RoleMiddleware(requiredRole domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value(UserContextKey).(*domain.User)
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Simple hierarchy: Admin > Auditor > Viewer
			if !hasPermission(user.Role, requiredRole) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasPermission(userRole, requiredRole domain.Role) bool {
	if userRole == domain.RoleAdmin {
		return true
	}
	if userRole == domain.RoleAuditor {
		return requiredRole != domain.RoleAdmin
	}
	if userRole == domain.RoleViewer {
		return requiredRole == domain.RoleViewer
	}
	return false
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(UserContextKey).(*domain.User)
	return user
}
