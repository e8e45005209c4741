// Package reporting assembles audit report summaries: program statistics,
// an overall risk score derived from recorded findings, the highest-risk
// findings and remediation recommendations.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
)

// ReportGenerator generates audit summary reports for a program
type ReportGenerator struct {
	programs ports.ProgramRepository
	tasks    ports.TaskRepository
	findings ports.FindingRepository
	analyses ports.AnalysisRepository
	riskCalc *RiskCalculator
	recs     *RecommendationEngine
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(
	programs ports.ProgramRepository,
	tasks ports.TaskRepository,
	findings ports.FindingRepository,
	analyses ports.AnalysisRepository,
) *ReportGenerator {
	return &ReportGenerator{
		programs: programs,
		tasks:    tasks,
		findings: findings,
		analyses: analyses,
		riskCalc: NewRiskCalculator(),
		recs:     NewRecommendationEngine(),
	}
}

// Generate builds the report summary for one audit program
func (g *ReportGenerator) Generate(ctx context.Context, programID int64, generatedBy string) (*domain.ReportSummary, error) {
	program, err := g.programs.GetProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program: %w", err)
	}

	tasks, err := g.tasks.ListTasks(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	findings, err := g.findings.ListFindings(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch findings: %w", err)
	}

	analyses, err := g.analyses.ListAnalyses(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch analyses: %w", err)
	}

	stats := g.calculateStats(tasks, findings)
	stats.AnalysesRun = len(analyses)

	riskScore := g.riskCalc.CalculateOverallRisk(findings)
	top := g.riskCalc.TopFindings(findings, 5)

	return &domain.ReportSummary{
		Metadata: domain.ReportMetadata{
			ID:          uuid.New().String(),
			Title:       "Smart Contract Audit Summary",
			ProgramName: program.Name,
			GeneratedAt: time.Now().UTC(),
			GeneratedBy: generatedBy,
		},
		RiskScore:       riskScore,
		RiskLevel:       g.riskCalc.GetRiskLevel(riskScore),
		Stats:           stats,
		TopFindings:     top,
		Recommendations: g.recs.GenerateRecommendations(top),
	}, nil
}

// calculateStats computes task and finding statistics
func (g *ReportGenerator) calculateStats(tasks []domain.Task, findings []domain.Finding) domain.ReportStats {
	stats := domain.ReportStats{
		TotalTasks:     len(tasks),
		TotalFindings:  len(findings),
		SeverityCounts: make(map[domain.FindingSeverity]int),
	}

	for _, t := range tasks {
		if t.Status == domain.TaskCompleted {
			stats.CompletedTasks++
		}
	}

	for _, f := range findings {
		stats.SeverityCounts[f.Severity]++
		if f.Status == domain.FindingPending || f.Status == domain.FindingConfirmed {
			stats.OpenFindings++
		}
	}

	return stats
}
