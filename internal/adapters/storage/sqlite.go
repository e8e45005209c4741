package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
)

// SQLiteAdapter implements the persistence ports using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// NewSQLiteAdapter initializes the database and migrates schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Auto Migrate
	if err := db.AutoMigrate(
		&ProgramModel{}, &TaskModel{}, &FindingModel{},
		&WhitelistModel{}, &AnalysisModel{},
		&domain.User{}, &domain.AuditLog{},
	); err != nil {
		return nil, err
	}

	// Create Indices for Performance
	db.Exec("CREATE INDEX IF NOT EXISTS idx_findings_severity ON finding_models(severity)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_findings_status ON finding_models(status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_status ON task_models(status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs(timestamp)")

	return &SQLiteAdapter{db: db}, nil
}

// SaveProgram creates or updates a program, assigning the generated ID on insert.
func (a *SQLiteAdapter) SaveProgram(ctx context.Context, p *domain.Program) error {
	m := toProgramModel(*p)
	if err := a.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

// GetProgram retrieves a program by ID.
func (a *SQLiteAdapter) GetProgram(ctx context.Context, id int64) (*domain.Program, error) {
	var m ProgramModel
	if err := a.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProgramNotFound
		}
		return nil, err
	}
	return toProgramDomain(m), nil
}

// ListPrograms retrieves all programs, newest first.
func (a *SQLiteAdapter) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	var models []ProgramModel
	if err := a.db.WithContext(ctx).Order("created_at desc").Find(&models).Error; err != nil {
		return nil, err
	}
	programs := make([]domain.Program, len(models))
	for i, m := range models {
		programs[i] = *toProgramDomain(m)
	}
	return programs, nil
}

// DeleteProgram removes a program and its dependent rows.
func (a *SQLiteAdapter) DeleteProgram(ctx context.Context, id int64) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&TaskModel{}, "program_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&FindingModel{}, "program_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&AnalysisModel{}, "program_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&ProgramModel{}, "id = ?", id).Error
	})
}

// SaveTask creates or updates a task.
func (a *SQLiteAdapter) SaveTask(ctx context.Context, t *domain.Task) error {
	m := toTaskModel(*t)
	if err := a.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	t.ID = m.ID
	return nil
}

// GetTask retrieves a task by ID.
func (a *SQLiteAdapter) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	var m TaskModel
	if err := a.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return toTaskDomain(m), nil
}

// ListTasks retrieves all tasks of a program in creation order.
func (a *SQLiteAdapter) ListTasks(ctx context.Context, programID int64) ([]domain.Task, error) {
	var models []TaskModel
	if err := a.db.WithContext(ctx).Where("program_id = ?", programID).
		Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, len(models))
	for i, m := range models {
		tasks[i] = *toTaskDomain(m)
	}
	return tasks, nil
}

// SaveFinding creates or updates a finding.
func (a *SQLiteAdapter) SaveFinding(ctx context.Context, f *domain.Finding) error {
	m := toFindingModel(*f)
	if err := a.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	f.ID = m.ID
	return nil
}

// GetFinding retrieves a finding by ID.
func (a *SQLiteAdapter) GetFinding(ctx context.Context, id int64) (*domain.Finding, error) {
	var m FindingModel
	if err := a.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFindingNotFound
		}
		return nil, err
	}
	return toFindingDomain(m), nil
}

// ListFindings retrieves all findings of a program, highest score first.
func (a *SQLiteAdapter) ListFindings(ctx context.Context, programID int64) ([]domain.Finding, error) {
	var models []FindingModel
	if err := a.db.WithContext(ctx).Where("program_id = ?", programID).
		Order("cvss_score desc, id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	findings := make([]domain.Finding, len(models))
	for i, m := range models {
		findings[i] = *toFindingDomain(m)
	}
	return findings, nil
}

// SaveContact records a whitelist signup. A duplicate email is reported as
// domain.ErrDuplicateEmail.
func (a *SQLiteAdapter) SaveContact(ctx context.Context, c *domain.WhitelistContact) error {
	m := toWhitelistModel(*c)
	if err := a.db.WithContext(ctx).Create(&m).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	c.ID = m.ID
	return nil
}

// ListContacts retrieves all whitelist signups in signup order.
func (a *SQLiteAdapter) ListContacts(ctx context.Context) ([]domain.WhitelistContact, error) {
	var models []WhitelistModel
	if err := a.db.WithContext(ctx).Order("signup_date asc").Find(&models).Error; err != nil {
		return nil, err
	}
	contacts := make([]domain.WhitelistContact, len(models))
	for i, m := range models {
		contacts[i] = *toWhitelistDomain(m)
	}
	return contacts, nil
}

// SaveAnalysis persists an AI analysis result.
func (a *SQLiteAdapter) SaveAnalysis(ctx context.Context, an *domain.Analysis) error {
	if an.CreatedAt.IsZero() {
		an.CreatedAt = time.Now().UTC()
	}
	m := toAnalysisModel(*an)
	if err := a.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	an.ID = m.ID
	return nil
}

// ListAnalyses retrieves stored analyses of a program, newest first.
func (a *SQLiteAdapter) ListAnalyses(ctx context.Context, programID int64) ([]domain.Analysis, error) {
	var models []AnalysisModel
	if err := a.db.WithContext(ctx).Where("program_id = ?", programID).
		Order("created_at desc").Find(&models).Error; err != nil {
		return nil, err
	}
	analyses := make([]domain.Analysis, len(models))
	for i, m := range models {
		analyses[i] = *toAnalysisDomain(m)
	}
	return analyses, nil
}

func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure interface compliance
var (
	_ ports.ProgramRepository   = (*SQLiteAdapter)(nil)
	_ ports.TaskRepository      = (*SQLiteAdapter)(nil)
	_ ports.FindingRepository   = (*SQLiteAdapter)(nil)
	_ ports.WhitelistRepository = (*SQLiteAdapter)(nil)
	_ ports.AnalysisRepository  = (*SQLiteAdapter)(nil)
)
