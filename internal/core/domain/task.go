package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// TaskPriority and TaskStatus are type-safe enumerations for audit tasks.
type (
	TaskPriority string
	TaskStatus   string
)

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"

	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskBlocked    TaskStatus = "blocked"
)

var (
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrTaskNotFound      = errors.New("task not found")
	ErrDependenciesOpen  = errors.New("task has uncompleted dependencies")
)

// IsValid reports whether the priority is a recognized level.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// IsValid reports whether the status is a recognized state.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskBlocked:
		return true
	}
	return false
}

// Task represents a single work item within an audit program. Dependencies
// on other tasks are stored as a comma-separated ID list for storage
// compatibility and exposed through Dependencies().
type Task struct {
	ID            int64        `json:"id"`
	ProgramID     int64        `json:"program_id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Priority      TaskPriority `json:"priority"`
	Status        TaskStatus   `json:"status"`
	DependencyIDs string       `json:"dependency_ids,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NewTask creates a validated task. An empty priority defaults to medium.
func NewTask(programID int64, title, description string, priority TaskPriority) (*Task, error) {
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	now := time.Now().UTC()
	return &Task{
		ProgramID:   programID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      TaskPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Dependencies returns the IDs of tasks this task depends on. Blank and
// non-numeric entries are dropped.
func (t *Task) Dependencies() []int64 {
	if t.DependencyIDs == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(t.DependencyIDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// SetDependencies encodes the dependency list back into the stored form.
func (t *Task) SetDependencies(ids []int64) {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	t.DependencyIDs = strings.Join(parts, ",")
}
