package reporting

import (
	"math"
	"sort"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

// RiskCalculator provides methods for calculating program risk scores
type RiskCalculator struct{}

// NewRiskCalculator creates a new risk calculator instance
func NewRiskCalculator() *RiskCalculator {
	return &RiskCalculator{}
}

// severityBaseline is used for findings recorded without a CVSS vector.
var severityBaseline = map[domain.FindingSeverity]float64{
	domain.SeverityCritical: 9.5,
	domain.SeverityHigh:     8.0,
	domain.SeverityMedium:   5.5,
	domain.SeverityLow:      2.5,
	domain.SeverityInfo:     0.5,
}

// CalculateOverallRisk calculates the overall risk score (0-10) for a set of
// findings. Scored findings contribute their CVSS score, unscored ones a
// baseline for their severity label. Fixed and rejected findings are
// discounted rather than dropped so a history of critical issues still
// registers.
func (rc *RiskCalculator) CalculateOverallRisk(findings []domain.Finding) float64 {
	if len(findings) == 0 {
		return 0.0
	}

	var totalRisk float64
	for _, f := range findings {
		risk := f.CVSSScore
		if risk == 0 && f.CVSSVector == "" {
			risk = severityBaseline[f.Severity]
		}

		statusMultiplier := 1.0
		switch f.Status {
		case domain.FindingFixed:
			statusMultiplier = 0.1 // Fixed findings have minimal residual impact
		case domain.FindingRejected:
			statusMultiplier = 0.0 // False positives carry no risk
		case domain.FindingPending:
			statusMultiplier = 0.7 // Unconfirmed findings count for less
		}

		totalRisk += risk * statusMultiplier
	}

	// Normalize by finding count to get average severity
	avgRisk := totalRisk / float64(len(findings))

	// Volume factor: more open findings means higher exposure.
	// 1.0 + (open / 10) caps at 2.0 for 10+ open findings.
	open := 0
	for _, f := range findings {
		if f.Status == domain.FindingPending || f.Status == domain.FindingConfirmed {
			open++
		}
	}
	volumeFactor := 1.0 + math.Min(float64(open)/10.0, 1.0)

	return math.Min(avgRisk*volumeFactor, 10.0)
}

// GetRiskLevel converts numeric score to human-readable level
func (rc *RiskCalculator) GetRiskLevel(score float64) string {
	switch {
	case score >= 8.0:
		return "Critical"
	case score >= 6.0:
		return "High"
	case score >= 4.0:
		return "Medium"
	default:
		return "Low"
	}
}

// severityRank orders severities for sorting when scores tie.
var severityRank = map[domain.FindingSeverity]int{
	domain.SeverityCritical: 4,
	domain.SeverityHigh:     3,
	domain.SeverityMedium:   2,
	domain.SeverityLow:      1,
	domain.SeverityInfo:     0,
}

// TopFindings returns the highest-risk active findings, ranked by CVSS score
// and then severity label. Fixed and rejected findings are excluded.
func (rc *RiskCalculator) TopFindings(findings []domain.Finding, limit int) []domain.Finding {
	var active []domain.Finding
	for _, f := range findings {
		if f.Status == domain.FindingPending || f.Status == domain.FindingConfirmed {
			active = append(active, f)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		if active[i].CVSSScore != active[j].CVSSScore {
			return active[i].CVSSScore > active[j].CVSSScore
		}
		return severityRank[active[i].Severity] > severityRank[active[j].Severity]
	})

	if len(active) > limit {
		active = active[:limit]
	}
	return active
}
