package domain

import "time"

// ReportMetadata carries the identification block of a generated report.
type ReportMetadata struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ProgramName string    `json:"program_name"`
	GeneratedAt time.Time `json:"generated_at"`
	GeneratedBy string    `json:"generated_by"` // username
}

// ReportSummary aggregates everything needed to render an audit report.
type ReportSummary struct {
	Metadata        ReportMetadata `json:"metadata"`
	RiskScore       float64        `json:"risk_score"` // 0-10
	RiskLevel       string         `json:"risk_level"`
	Stats           ReportStats    `json:"stats"`
	TopFindings     []Finding      `json:"top_findings"`
	Recommendations []string       `json:"recommendations"`
}

// ReportStats holds the counting block of a report.
type ReportStats struct {
	TotalTasks     int                     `json:"total_tasks"`
	CompletedTasks int                     `json:"completed_tasks"`
	TotalFindings  int                     `json:"total_findings"`
	OpenFindings   int                     `json:"open_findings"`
	SeverityCounts map[FindingSeverity]int `json:"severity_counts"`
	AnalysesRun    int                     `json:"analyses_run"`
}
