package reporting

import (
	"context"
	"strings"
	"testing"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

type memStore struct {
	programs map[int64]*domain.Program
	tasks    []domain.Task
	findings []domain.Finding
	analyses []domain.Analysis
}

func newMemStore() *memStore {
	return &memStore{programs: make(map[int64]*domain.Program)}
}

func (m *memStore) SaveProgram(_ context.Context, p *domain.Program) error {
	if p.ID == 0 {
		p.ID = int64(len(m.programs) + 1)
	}
	m.programs[p.ID] = p
	return nil
}

func (m *memStore) GetProgram(_ context.Context, id int64) (*domain.Program, error) {
	p, ok := m.programs[id]
	if !ok {
		return nil, domain.ErrProgramNotFound
	}
	return p, nil
}

func (m *memStore) ListPrograms(_ context.Context) ([]domain.Program, error) { return nil, nil }
func (m *memStore) DeleteProgram(_ context.Context, _ int64) error           { return nil }

func (m *memStore) SaveTask(_ context.Context, t *domain.Task) error { return nil }
func (m *memStore) GetTask(_ context.Context, _ int64) (*domain.Task, error) {
	return nil, nil
}
func (m *memStore) ListTasks(_ context.Context, _ int64) ([]domain.Task, error) {
	return m.tasks, nil
}

func (m *memStore) SaveFinding(_ context.Context, _ *domain.Finding) error { return nil }
func (m *memStore) GetFinding(_ context.Context, _ int64) (*domain.Finding, error) {
	return nil, nil
}
func (m *memStore) ListFindings(_ context.Context, _ int64) ([]domain.Finding, error) {
	return m.findings, nil
}

func (m *memStore) SaveAnalysis(_ context.Context, _ *domain.Analysis) error { return nil }
func (m *memStore) ListAnalyses(_ context.Context, _ int64) ([]domain.Analysis, error) {
	return m.analyses, nil
}

func TestGenerateReport(t *testing.T) {
	store := newMemStore()
	store.programs[1] = &domain.Program{ID: 1, Name: "Vault Audit"}
	store.tasks = []domain.Task{
		{ID: 1, Status: domain.TaskCompleted},
		{ID: 2, Status: domain.TaskCompleted},
		{ID: 3, Status: domain.TaskPending},
	}
	store.findings = []domain.Finding{
		{ID: 1, Title: "Reentrancy in withdraw", CVSSScore: 10.0, Severity: domain.SeverityCritical, Status: domain.FindingConfirmed},
		{ID: 2, Title: "Unbounded loop", Severity: domain.SeverityMedium, Status: domain.FindingPending},
		{ID: 3, Title: "Shadowed variable", Severity: domain.SeverityLow, Status: domain.FindingFixed},
	}
	store.analyses = []domain.Analysis{{ID: 1, Type: domain.AnalysisSecurity}}

	g := NewReportGenerator(store, store, store, store)
	report, err := g.Generate(context.Background(), 1, "auditor1")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if report.Metadata.ProgramName != "Vault Audit" {
		t.Errorf("ProgramName = %q", report.Metadata.ProgramName)
	}
	if report.Metadata.GeneratedBy != "auditor1" {
		t.Errorf("GeneratedBy = %q", report.Metadata.GeneratedBy)
	}
	if report.Metadata.ID == "" {
		t.Error("report ID should be set")
	}

	if report.Stats.TotalTasks != 3 || report.Stats.CompletedTasks != 2 {
		t.Errorf("task stats = %d/%d, want 2/3 completed",
			report.Stats.CompletedTasks, report.Stats.TotalTasks)
	}
	if report.Stats.TotalFindings != 3 || report.Stats.OpenFindings != 2 {
		t.Errorf("finding stats = %d open of %d, want 2 of 3",
			report.Stats.OpenFindings, report.Stats.TotalFindings)
	}
	if report.Stats.SeverityCounts[domain.SeverityCritical] != 1 {
		t.Errorf("SeverityCounts[critical] = %d, want 1",
			report.Stats.SeverityCounts[domain.SeverityCritical])
	}
	if report.Stats.AnalysesRun != 1 {
		t.Errorf("AnalysesRun = %d, want 1", report.Stats.AnalysesRun)
	}

	if report.RiskScore <= 0 || report.RiskScore > 10 {
		t.Errorf("RiskScore = %v, want in (0, 10]", report.RiskScore)
	}
	if report.RiskLevel == "" {
		t.Error("RiskLevel should be set")
	}

	if len(report.TopFindings) != 2 {
		t.Fatalf("TopFindings count = %d, want 2 (fixed excluded)", len(report.TopFindings))
	}
	if report.TopFindings[0].ID != 1 {
		t.Errorf("TopFindings[0].ID = %d, want 1", report.TopFindings[0].ID)
	}

	foundReentrancy := false
	for _, r := range report.Recommendations {
		if strings.Contains(r, "checks-effects-interactions") {
			foundReentrancy = true
		}
	}
	if !foundReentrancy {
		t.Errorf("expected a reentrancy recommendation, got %v", report.Recommendations)
	}
}

func TestGenerateReportUnknownProgram(t *testing.T) {
	store := newMemStore()
	g := NewReportGenerator(store, store, store, store)

	if _, err := g.Generate(context.Background(), 42, "auditor1"); err == nil {
		t.Fatal("expected error for unknown program")
	}
}

func TestGenerateRecommendationsGeneralFallback(t *testing.T) {
	re := NewRecommendationEngine()

	recs := re.GenerateRecommendations(nil)
	if len(recs) != 3 {
		t.Fatalf("expected 3 general recommendations, got %d", len(recs))
	}
}
