package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

func sampleReport() *domain.ReportSummary {
	return &domain.ReportSummary{
		Metadata: domain.ReportMetadata{
			ID:          "test-report-123",
			Title:       "Smart Contract Audit Summary",
			ProgramName: "Vault Audit",
			GeneratedAt: time.Now(),
			GeneratedBy: "auditor1",
		},
		RiskScore: 7.5,
		RiskLevel: "High",
		Stats: domain.ReportStats{
			TotalTasks:     10,
			CompletedTasks: 7,
			TotalFindings:  4,
			OpenFindings:   3,
			SeverityCounts: map[domain.FindingSeverity]int{
				domain.SeverityCritical: 1,
				domain.SeverityHigh:     1,
				domain.SeverityMedium:   2,
			},
			AnalysesRun: 2,
		},
		TopFindings: []domain.Finding{
			{
				Title:     "Reentrancy in withdraw",
				Severity:  domain.SeverityCritical,
				CVSSScore: 10.0,
				Status:    domain.FindingConfirmed,
			},
			{
				Title:    "Unbounded loop over deposit array which may exceed the block gas limit",
				Severity: domain.SeverityMedium,
				Status:   domain.FindingPending,
			},
		},
		Recommendations: []string{
			"Apply the checks-effects-interactions pattern.",
			"Bound loop iterations.",
		},
	}
}

func TestExportSummary(t *testing.T) {
	exporter := NewPDFExporter()

	data, err := exporter.ExportSummary(sampleReport())
	if err != nil {
		t.Fatalf("ExportSummary() error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF, starts with %q", data[:8])
	}
}

func TestExportSummaryNoFindings(t *testing.T) {
	exporter := NewPDFExporter()

	report := sampleReport()
	report.TopFindings = nil
	report.Recommendations = nil
	report.RiskScore = 0
	report.RiskLevel = "Low"

	data, err := exporter.ExportSummary(report)
	if err != nil {
		t.Fatalf("ExportSummary() error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
}
