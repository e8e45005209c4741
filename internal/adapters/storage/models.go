package storage

import "time"

// ProgramModel is the GORM model for audit programs.
type ProgramModel struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	Name            string
	Description     string
	ContractAddress string
	Blockchain      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TaskModel is the GORM model for audit tasks.
type TaskModel struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	ProgramID     int64 `gorm:"index"`
	Title         string
	Description   string
	Priority      string
	Status        string
	DependencyIDs string // comma-separated task IDs
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FindingModel is the GORM model for findings.
type FindingModel struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	ProgramID   int64 `gorm:"index"`
	TaskID      int64
	Title       string
	Description string
	Severity    string
	CVSSScore   float64
	CVSSVector  string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WhitelistModel is the GORM model for early-access signups.
type WhitelistModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex"`
	Name         string
	Organization string
	SignupDate   time.Time
}

// AnalysisModel is the GORM model for stored AI analyses.
type AnalysisModel struct {
	ID           int64 `gorm:"primaryKey;autoIncrement"`
	ProgramID    int64 `gorm:"index"`
	ContractCode string
	Result       string
	Type         string
	Model        string
	CreatedAt    time.Time
}
