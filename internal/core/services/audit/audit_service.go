package audit

import (
	"context"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
)

type ctxKey struct{}

// WithUser attaches the acting user to a context so subsequent audit entries
// are attributed to them. Controllers set this after authentication.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// AuditService records critical system actions to the audit trail.
type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Log writes an audit entry attributed to the user carried in the context,
// falling back to "system" for unattributed operations.
func (s *AuditService) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	userID := "system"
	username := "system"

	if u, ok := ctx.Value(ctxKey{}).(*domain.User); ok && u != nil {
		userID = u.ID
		username = u.Username
	}

	entry, err := domain.NewAuditLog(userID, username, action, target, details, "")
	if err != nil {
		return err
	}

	return s.repo.SaveAuditLog(ctx, *entry)
}

func (s *AuditService) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.repo.ListAuditLogs(ctx, limit)
}
