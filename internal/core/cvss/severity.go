package cvss

// Severity rating labels.
const (
	SeverityNone     = "None"
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// Severity maps a score to its qualitative rating. Boundaries are inclusive
// on the lower bound: 0.0 None, 0.1-3.9 Low, 4.0-6.9 Medium, 7.0-8.9 High,
// 9.0-10.0 Critical.
func Severity(score float64) string {
	switch {
	case score == 0.0:
		return SeverityNone
	case score <= 3.9:
		return SeverityLow
	case score <= 6.9:
		return SeverityMedium
	case score <= 8.9:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}
