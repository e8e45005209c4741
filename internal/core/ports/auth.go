package ports

import (
	"context"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

// AuthService manages credentials and sessions.
type AuthService interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

// AuditService records critical system actions.
type AuditService interface {
	Log(ctx context.Context, action domain.AuditAction, target, details string) error
	GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error)
}
