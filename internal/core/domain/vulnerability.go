package domain

import "time"

// VulnPattern is an entry in the known-vulnerability knowledge base: a named
// smart-contract weakness with its qualitative severity, reference CVSS
// scoring and an optional detection regex applied to contract source.
type VulnPattern struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Severity    FindingSeverity `json:"severity"`
	CVSSScore   float64         `json:"cvss_score"`
	CVSSVector  string          `json:"cvss_vector,omitempty"`
	Description string          `json:"description"`
	Remediation string          `json:"remediation,omitempty"`
	Pattern     string          `json:"pattern,omitempty"` // detection regex, empty = manual-review only
	References  []string        `json:"references,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

// VulnMatch represents a knowledge-base pattern that matched contract source.
type VulnMatch struct {
	Pattern  VulnPattern `json:"pattern"`
	Evidence []string    `json:"evidence"` // matched source snippets
}

// VulnSyncStatus tracks the last seeding of the knowledge base.
type VulnSyncStatus struct {
	LastSyncTime time.Time `json:"last_sync_time"`
	RecordCount  int       `json:"record_count"`
	ErrorMessage string    `json:"error_message,omitempty"`
}
