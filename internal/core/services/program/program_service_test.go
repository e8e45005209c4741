package program

import (
	"context"
	"testing"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories for exercising the workflow end to end.

type memStore struct {
	programs map[int64]domain.Program
	tasks    map[int64]domain.Task
	findings map[int64]domain.Finding
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		programs: make(map[int64]domain.Program),
		tasks:    make(map[int64]domain.Task),
		findings: make(map[int64]domain.Finding),
	}
}

func (m *memStore) id() int64 { m.nextID++; return m.nextID }

func (m *memStore) SaveProgram(ctx context.Context, p *domain.Program) error {
	if p.ID == 0 {
		p.ID = m.id()
	}
	m.programs[p.ID] = *p
	return nil
}

func (m *memStore) GetProgram(ctx context.Context, id int64) (*domain.Program, error) {
	if p, ok := m.programs[id]; ok {
		return &p, nil
	}
	return nil, domain.ErrProgramNotFound
}

func (m *memStore) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	var out []domain.Program
	for _, p := range m.programs {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) DeleteProgram(ctx context.Context, id int64) error {
	delete(m.programs, id)
	return nil
}

func (m *memStore) SaveTask(ctx context.Context, t *domain.Task) error {
	if t.ID == 0 {
		t.ID = m.id()
	}
	m.tasks[t.ID] = *t
	return nil
}

func (m *memStore) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if t, ok := m.tasks[id]; ok {
		return &t, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (m *memStore) ListTasks(ctx context.Context, programID int64) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range m.tasks {
		if t.ProgramID == programID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) SaveFinding(ctx context.Context, f *domain.Finding) error {
	if f.ID == 0 {
		f.ID = m.id()
	}
	m.findings[f.ID] = *f
	return nil
}

func (m *memStore) GetFinding(ctx context.Context, id int64) (*domain.Finding, error) {
	if f, ok := m.findings[id]; ok {
		return &f, nil
	}
	return nil, domain.ErrFindingNotFound
}

func (m *memStore) ListFindings(ctx context.Context, programID int64) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, f := range m.findings {
		if f.ProgramID == programID {
			out = append(out, f)
		}
	}
	return out, nil
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	return NewService(store, store, store, nil), store
}

func TestCreateProgram(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, "DEX audit", "AMM router review", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "ethereum")
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	_, err = svc.CreateProgram(ctx, "", "", "", "")
	assert.ErrorIs(t, err, domain.ErrEmptyProgramName)

	_, err = svc.CreateProgram(ctx, "bad addr", "", "0x123", "ethereum")
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestTaskDependencyGating(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, "audit", "", "", "")
	require.NoError(t, err)

	setup, err := svc.AddTask(ctx, p.ID, "Read the docs", "", domain.PriorityLow, nil)
	require.NoError(t, err)

	review, err := svc.AddTask(ctx, p.ID, "Manual review", "", domain.PriorityHigh, []int64{setup.ID})
	require.NoError(t, err)

	// Completing the dependent task first is rejected.
	_, err = svc.UpdateTaskStatus(ctx, review.ID, domain.TaskCompleted)
	assert.ErrorIs(t, err, domain.ErrDependenciesOpen)

	_, err = svc.UpdateTaskStatus(ctx, setup.ID, domain.TaskCompleted)
	require.NoError(t, err)

	done, err := svc.UpdateTaskStatus(ctx, review.ID, domain.TaskCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, done.Status)
}

func TestAddTaskRejectsForeignDependency(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p1, _ := svc.CreateProgram(ctx, "one", "", "", "")
	p2, _ := svc.CreateProgram(ctx, "two", "", "", "")

	foreign, err := svc.AddTask(ctx, p1.ID, "task in one", "", "", nil)
	require.NoError(t, err)

	_, err = svc.AddTask(ctx, p2.ID, "task in two", "", "", []int64{foreign.ID})
	assert.Error(t, err)
}

func TestRecordFindingScoresVector(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreateProgram(ctx, "audit", "", "", "")
	require.NoError(t, err)

	f, err := svc.RecordFinding(ctx, p.ID, 0, "Reentrancy in withdraw()", "…",
		domain.SeverityLow, "AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H")
	require.NoError(t, err)

	// Engine output overrides the caller-supplied severity.
	assert.Equal(t, 10.0, f.CVSSScore)
	assert.Equal(t, domain.SeverityCritical, f.Severity)
	assert.Equal(t, "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H", f.CVSSVector)
}

func TestRecordFindingRejectsBadVector(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.CreateProgram(ctx, "audit", "", "", "")

	// Out-of-domain metric value.
	_, err := svc.RecordFinding(ctx, p.ID, 0, "x", "", "", "AV:Q/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H")
	assert.Error(t, err)

	// Incomplete vector.
	_, err = svc.RecordFinding(ctx, p.ID, 0, "x", "", "", "AV:N/AC:L")
	assert.Error(t, err)
}

func TestRecordFindingWithoutVector(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.CreateProgram(ctx, "audit", "", "", "")

	f, err := svc.RecordFinding(ctx, p.ID, 0, "Style issue", "", domain.SeverityInfo, "")
	require.NoError(t, err)
	assert.Equal(t, domain.SeverityInfo, f.Severity)
	assert.Zero(t, f.CVSSScore)
}

func TestUpdateFindingStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, _ := svc.CreateProgram(ctx, "audit", "", "", "")
	f, err := svc.RecordFinding(ctx, p.ID, 0, "bug", "", "", "")
	require.NoError(t, err)

	updated, err := svc.UpdateFindingStatus(ctx, f.ID, domain.FindingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.FindingConfirmed, updated.Status)

	_, err = svc.UpdateFindingStatus(ctx, f.ID, "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidFindingStatus)
}
