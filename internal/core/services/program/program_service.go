// Package program orchestrates the audit workflow: programs, their tasks and
// their findings. Findings carrying a CVSS vector are scored through the
// cvss engine before persistence so the stored score, vector string and
// severity always agree.
package program

import (
	"context"
	"fmt"

	"github.com/lcalzada-xor/scaudit/internal/core/cvss"
	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
	"github.com/lcalzada-xor/scaudit/internal/telemetry"
)

// Service implements the audit workflow operations.
type Service struct {
	programs ports.ProgramRepository
	tasks    ports.TaskRepository
	findings ports.FindingRepository
	auditor  ports.AuditService
}

// NewService creates the audit workflow service.
func NewService(programs ports.ProgramRepository, tasks ports.TaskRepository,
	findings ports.FindingRepository, auditor ports.AuditService) *Service {
	return &Service{
		programs: programs,
		tasks:    tasks,
		findings: findings,
		auditor:  auditor,
	}
}

// CreateProgram validates and persists a new audit program.
func (s *Service) CreateProgram(ctx context.Context, name, description, address, blockchain string) (*domain.Program, error) {
	p, err := domain.NewProgram(name, description, address, blockchain)
	if err != nil {
		return nil, err
	}

	if err := s.programs.SaveProgram(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save program: %w", err)
	}

	s.audit(ctx, domain.ActionProgramCreated, fmt.Sprintf("program:%d", p.ID), p.Name)
	return p, nil
}

// GetProgram returns a program by ID.
func (s *Service) GetProgram(ctx context.Context, id int64) (*domain.Program, error) {
	return s.programs.GetProgram(ctx, id)
}

// ListPrograms returns all programs.
func (s *Service) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	return s.programs.ListPrograms(ctx)
}

// AddTask validates and persists a new task under a program. Dependency IDs
// must reference existing tasks of the same program.
func (s *Service) AddTask(ctx context.Context, programID int64, title, description string,
	priority domain.TaskPriority, dependencies []int64) (*domain.Task, error) {

	if _, err := s.programs.GetProgram(ctx, programID); err != nil {
		return nil, err
	}

	t, err := domain.NewTask(programID, title, description, priority)
	if err != nil {
		return nil, err
	}

	for _, dep := range dependencies {
		depTask, err := s.tasks.GetTask(ctx, dep)
		if err != nil {
			return nil, fmt.Errorf("dependency %d: %w", dep, err)
		}
		if depTask.ProgramID != programID {
			return nil, fmt.Errorf("dependency %d belongs to another program", dep)
		}
	}
	t.SetDependencies(dependencies)

	if err := s.tasks.SaveTask(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return t, nil
}

// ListTasks returns the tasks of a program.
func (s *Service) ListTasks(ctx context.Context, programID int64) ([]domain.Task, error) {
	return s.tasks.ListTasks(ctx, programID)
}

// UpdateTaskStatus transitions a task. Completing a task requires all of its
// dependencies to be completed first.
func (s *Service) UpdateTaskStatus(ctx context.Context, taskID int64, status domain.TaskStatus) (*domain.Task, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidTaskStatus
	}

	t, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if status == domain.TaskCompleted {
		for _, dep := range t.Dependencies() {
			depTask, err := s.tasks.GetTask(ctx, dep)
			if err != nil {
				return nil, fmt.Errorf("dependency %d: %w", dep, err)
			}
			if depTask.Status != domain.TaskCompleted {
				return nil, domain.ErrDependenciesOpen
			}
		}
	}

	t.Status = status
	if err := s.tasks.SaveTask(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return t, nil
}

// RecordFinding validates and persists a finding. When vector is non-empty it
// is parsed and evaluated by the CVSS engine; the resulting score, canonical
// vector string and derived severity override any caller-supplied severity.
func (s *Service) RecordFinding(ctx context.Context, programID, taskID int64,
	title, description string, severity domain.FindingSeverity, vector string) (*domain.Finding, error) {

	if _, err := s.programs.GetProgram(ctx, programID); err != nil {
		return nil, err
	}

	f, err := domain.NewFinding(programID, title, description, severity)
	if err != nil {
		return nil, err
	}
	f.TaskID = taskID

	if vector != "" {
		metrics, err := cvss.ParseVector(vector)
		if err != nil {
			return nil, fmt.Errorf("invalid CVSS vector: %w", err)
		}
		result, err := cvss.Evaluate(metrics)
		if err != nil {
			return nil, fmt.Errorf("CVSS evaluation failed: %w", err)
		}

		f.CVSSScore = result.Score
		f.CVSSVector = result.Vector
		f.Severity = domain.SeverityFromLabel(result.Severity)
		telemetry.ScoresComputed.WithLabelValues(result.Severity).Inc()
	}

	if err := s.findings.SaveFinding(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to save finding: %w", err)
	}

	telemetry.FindingsRecorded.WithLabelValues(string(f.Severity)).Inc()
	s.audit(ctx, domain.ActionFindingRecord, fmt.Sprintf("finding:%d", f.ID), f.Title)
	return f, nil
}

// GetFinding returns a finding by ID.
func (s *Service) GetFinding(ctx context.Context, id int64) (*domain.Finding, error) {
	return s.findings.GetFinding(ctx, id)
}

// ListFindings returns the findings of a program.
func (s *Service) ListFindings(ctx context.Context, programID int64) ([]domain.Finding, error) {
	return s.findings.ListFindings(ctx, programID)
}

// UpdateFindingStatus transitions a finding's triage status.
func (s *Service) UpdateFindingStatus(ctx context.Context, findingID int64, status domain.FindingStatus) (*domain.Finding, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidFindingStatus
	}

	f, err := s.findings.GetFinding(ctx, findingID)
	if err != nil {
		return nil, err
	}

	f.Status = status
	if err := s.findings.SaveFinding(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to save finding: %w", err)
	}
	return f, nil
}

// audit records an entry, tolerating a nil audit service in tests and tools.
func (s *Service) audit(ctx context.Context, action domain.AuditAction, target, details string) {
	if s.auditor == nil {
		return
	}
	// Best effort: a failed audit write must not fail the operation.
	_ = s.auditor.Log(ctx, action, target, details)
}
