package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/services/program"
)

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

func (m *memStore) SaveProgram(_ context.Context, p *domain.Program) error {
	if p.ID == 0 {
		p.ID = m.id()
	}
	m.programs[p.ID] = *p
	return nil
}

func (m *memStore) GetProgram(_ context.Context, id int64) (*domain.Program, error) {
	p, ok := m.programs[id]
	if !ok {
		return nil, domain.ErrProgramNotFound
	}
	return &p, nil
}

func (m *memStore) ListPrograms(_ context.Context) ([]domain.Program, error) {
	out := make([]domain.Program, 0, len(m.programs))
	for _, p := range m.programs {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) DeleteProgram(_ context.Context, id int64) error {
	delete(m.programs, id)
	return nil
}

func (m *memStore) SaveTask(_ context.Context, t *domain.Task) error {
	if t.ID == 0 {
		t.ID = m.id()
	}
	m.tasks[t.ID] = *t
	return nil
}

func (m *memStore) GetTask(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &t, nil
}

func (m *memStore) ListTasks(_ context.Context, programID int64) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range m.tasks {
		if t.ProgramID == programID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) SaveFinding(_ context.Context, f *domain.Finding) error {
	if f.ID == 0 {
		f.ID = m.id()
	}
	m.findings[f.ID] = *f
	return nil
}

func (m *memStore) GetFinding(_ context.Context, id int64) (*domain.Finding, error) {
	f, ok := m.findings[id]
	if !ok {
		return nil, domain.ErrFindingNotFound
	}
	return &f, nil
}

func (m *memStore) ListFindings(_ context.Context, programID int64) ([]domain.Finding, error) {
	var out []domain.Finding
	for _, f := range m.findings {
		if f.ProgramID == programID {
			out = append(out, f)
		}
	}
	return out, nil
}

func newTestProgramHandler() (*ProgramHandler, *memStore) {
	store := newMemStore()
	svc := program.NewService(store, store, store, nil)
	return NewProgramHandler(svc, nil), store
}

func doRequest(h http.HandlerFunc, method, path string, body any, vars map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleCreateProgram(t *testing.T) {
	h, store := newTestProgramHandler()

	rec := doRequest(h.HandleCreateProgram, http.MethodPost, "/api/programs", map[string]string{
		"name":             "Vault Audit",
		"description":      "token vault review",
		"contract_address": "0x1234567890123456789012345678901234567890",
		"blockchain":       "ethereum",
	}, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var p domain.Program
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Vault Audit", p.Name)
	assert.NotZero(t, p.ID)
	assert.Len(t, store.programs, 1)
}

func TestHandleCreateProgramRejectsEmptyName(t *testing.T) {
	h, _ := newTestProgramHandler()

	rec := doRequest(h.HandleCreateProgram, http.MethodPost, "/api/programs",
		map[string]string{"name": ""}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreateProgramRejectsShortAddress(t *testing.T) {
	h, store := newTestProgramHandler()

	rec := doRequest(h.HandleCreateProgram, http.MethodPost, "/api/programs", map[string]string{
		"name":             "Vault Audit",
		"contract_address": "0x1234",
		"blockchain":       "ethereum",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.programs)
}

func TestHandleGetProgramNotFound(t *testing.T) {
	h, _ := newTestProgramHandler()

	rec := doRequest(h.HandleGetProgram, http.MethodGet, "/api/programs/42", nil,
		map[string]string{"id": "42"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAddTaskAndUpdateStatus(t *testing.T) {
	h, store := newTestProgramHandler()
	p, err := domain.NewProgram("Vault Audit", "", "", "ethereum")
	require.NoError(t, err)
	require.NoError(t, store.SaveProgram(context.Background(), p))

	rec := doRequest(h.HandleAddTask, http.MethodPost, "/api/programs/1/tasks", map[string]any{
		"title":    "Review access control",
		"priority": "high",
	}, map[string]string{"id": "1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var task domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))

	rec = doRequest(h.HandleUpdateTaskStatus, http.MethodPatch, "/api/tasks/2", map[string]string{
		"status": "completed",
	}, map[string]string{"id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleUpdateTaskStatusBlockedByDependencies(t *testing.T) {
	h, store := newTestProgramHandler()
	p, _ := domain.NewProgram("Vault Audit", "", "", "ethereum")
	store.SaveProgram(context.Background(), p)

	dep, _ := domain.NewTask(p.ID, "setup", "", domain.PriorityHigh)
	store.SaveTask(context.Background(), dep)

	blocked, _ := domain.NewTask(p.ID, "review", "", domain.PriorityHigh)
	blocked.SetDependencies([]int64{dep.ID})
	store.SaveTask(context.Background(), blocked)

	rec := doRequest(h.HandleUpdateTaskStatus, http.MethodPatch, "/api/tasks/3", map[string]string{
		"status": "completed",
	}, map[string]string{"id": "3"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleRecordFindingScoresVector(t *testing.T) {
	h, store := newTestProgramHandler()
	p, _ := domain.NewProgram("Vault Audit", "", "", "ethereum")
	store.SaveProgram(context.Background(), p)

	rec := doRequest(h.HandleRecordFinding, http.MethodPost, "/api/programs/1/findings", map[string]any{
		"title":       "Reentrancy in withdraw",
		"description": "external call before state update",
		"severity":    "low",
		"cvss_vector": "AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
	}, map[string]string{"id": "1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var f domain.Finding
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, 10.0, f.CVSSScore)
	assert.Equal(t, domain.SeverityCritical, f.Severity)
	assert.Equal(t, "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H", f.CVSSVector)
}

func TestHandleRecordFindingInvalidVector(t *testing.T) {
	h, store := newTestProgramHandler()
	p, _ := domain.NewProgram("Vault Audit", "", "", "ethereum")
	store.SaveProgram(context.Background(), p)

	rec := doRequest(h.HandleRecordFinding, http.MethodPost, "/api/programs/1/findings", map[string]any{
		"title":       "bad vector",
		"severity":    "low",
		"cvss_vector": "AV:Q/AC:L",
	}, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
