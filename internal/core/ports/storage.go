// Package ports defines the interfaces between the core services and the
// adapters that implement persistence, AI access and transport concerns.
package ports

import (
	"context"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

// ProgramRepository persists audit programs.
type ProgramRepository interface {
	SaveProgram(ctx context.Context, p *domain.Program) error
	GetProgram(ctx context.Context, id int64) (*domain.Program, error)
	ListPrograms(ctx context.Context) ([]domain.Program, error)
	DeleteProgram(ctx context.Context, id int64) error
}

// TaskRepository persists audit tasks.
type TaskRepository interface {
	SaveTask(ctx context.Context, t *domain.Task) error
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context, programID int64) ([]domain.Task, error)
}

// FindingRepository persists audit findings.
type FindingRepository interface {
	SaveFinding(ctx context.Context, f *domain.Finding) error
	GetFinding(ctx context.Context, id int64) (*domain.Finding, error)
	ListFindings(ctx context.Context, programID int64) ([]domain.Finding, error)
}

// WhitelistRepository persists early-access signups.
type WhitelistRepository interface {
	SaveContact(ctx context.Context, c *domain.WhitelistContact) error
	ListContacts(ctx context.Context) ([]domain.WhitelistContact, error)
}

// AnalysisRepository persists AI analysis results.
type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, a *domain.Analysis) error
	ListAnalyses(ctx context.Context, programID int64) ([]domain.Analysis, error)
}

// UserRepository persists users.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// AuditRepository persists the audit trail.
type AuditRepository interface {
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error
	ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error)
}
