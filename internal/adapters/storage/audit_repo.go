package storage

import (
	"context"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
)

// Ensure interface compliance
var _ ports.AuditRepository = (*SQLiteAdapter)(nil)

// SaveAuditLog appends an entry to the audit trail.
func (a *SQLiteAdapter) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	return a.db.WithContext(ctx).Create(&log).Error
}

// ListAuditLogs returns the most recent audit entries.
func (a *SQLiteAdapter) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	var logs []domain.AuditLog
	if err := a.db.WithContext(ctx).Order("timestamp desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
