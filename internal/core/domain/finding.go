package domain

import (
	"errors"
	"time"
)

// FindingSeverity and FindingStatus are type-safe enumerations for audit findings.
type (
	FindingSeverity string
	FindingStatus   string
)

const (
	SeverityCritical FindingSeverity = "critical"
	SeverityHigh     FindingSeverity = "high"
	SeverityMedium   FindingSeverity = "medium"
	SeverityLow      FindingSeverity = "low"
	SeverityInfo     FindingSeverity = "info"

	FindingPending   FindingStatus = "pending"
	FindingConfirmed FindingStatus = "confirmed"
	FindingRejected  FindingStatus = "rejected"
	FindingFixed     FindingStatus = "fixed"
)

var (
	ErrEmptyFindingTitle    = errors.New("finding title cannot be empty")
	ErrInvalidSeverity      = errors.New("invalid finding severity")
	ErrInvalidFindingStatus = errors.New("invalid finding status")
	ErrFindingNotFound      = errors.New("finding not found")
)

// IsValid reports whether the severity is a recognized level.
func (s FindingSeverity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	}
	return false
}

// IsValid reports whether the status is a recognized state.
func (s FindingStatus) IsValid() bool {
	switch s {
	case FindingPending, FindingConfirmed, FindingRejected, FindingFixed:
		return true
	}
	return false
}

// Finding represents a recorded vulnerability within an audit program.
// CVSSScore and CVSSVector are populated by the scoring service when a
// metric vector is supplied; Severity is then derived from the score.
type Finding struct {
	ID          int64           `json:"id"`
	ProgramID   int64           `json:"program_id"`
	TaskID      int64           `json:"task_id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Severity    FindingSeverity `json:"severity"`
	CVSSScore   float64         `json:"cvss_score"`
	CVSSVector  string          `json:"cvss_vector,omitempty"`
	Status      FindingStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewFinding creates a validated finding. An empty severity defaults to medium.
func NewFinding(programID int64, title, description string, severity FindingSeverity) (*Finding, error) {
	if title == "" {
		return nil, ErrEmptyFindingTitle
	}
	if severity == "" {
		severity = SeverityMedium
	}
	if !severity.IsValid() {
		return nil, ErrInvalidSeverity
	}

	now := time.Now().UTC()
	return &Finding{
		ProgramID:   programID,
		Title:       title,
		Description: description,
		Severity:    severity,
		Status:      FindingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SeverityFromLabel maps a CVSS qualitative rating ("None", "Low", ...) onto
// the finding severity enumeration, with "None" collapsing to informational.
func SeverityFromLabel(label string) FindingSeverity {
	switch label {
	case "Critical":
		return SeverityCritical
	case "High":
		return SeverityHigh
	case "Medium":
		return SeverityMedium
	case "Low":
		return SeverityLow
	default:
		return SeverityInfo
	}
}
