package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lcalzada-xor/scaudit/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/services/program"
)

// ProgramHandler handles the audit workflow API: programs, tasks, findings
type ProgramHandler struct {
	Service *program.Service
	WS      *websocket.Manager
}

// NewProgramHandler creates a new ProgramHandler
func NewProgramHandler(service *program.Service, ws *websocket.Manager) *ProgramHandler {
	return &ProgramHandler{Service: service, WS: ws}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// HandleCreateProgram creates a new audit program.
func (h *ProgramHandler) HandleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Description     string `json:"description"`
		ContractAddress string `json:"contract_address"`
		Blockchain      string `json:"blockchain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	p, err := h.Service.CreateProgram(r.Context(), req.Name, req.Description,
		req.ContractAddress, req.Blockchain)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// HandleListPrograms returns all programs.
func (h *ProgramHandler) HandleListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.Service.ListPrograms(r.Context())
	if err != nil {
		log.Printf("Failed to list programs: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list programs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"programs": programs})
}

// HandleGetProgram returns one program.
func (h *ProgramHandler) HandleGetProgram(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	p, err := h.Service.GetProgram(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProgramNotFound) {
			writeError(w, http.StatusNotFound, "program not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get program")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleAddTask adds a task to a program.
func (h *ProgramHandler) HandleAddTask(w http.ResponseWriter, r *http.Request) {
	programID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	var req struct {
		Title        string              `json:"title"`
		Description  string              `json:"description"`
		Priority     domain.TaskPriority `json:"priority"`
		Dependencies []int64             `json:"dependencies"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	t, err := h.Service.AddTask(r.Context(), programID, req.Title, req.Description,
		req.Priority, req.Dependencies)
	if err != nil {
		if errors.Is(err, domain.ErrProgramNotFound) {
			writeError(w, http.StatusNotFound, "program not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

// HandleListTasks returns the tasks of a program.
func (h *ProgramHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	programID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	tasks, err := h.Service.ListTasks(r.Context(), programID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// HandleUpdateTaskStatus transitions a task.
func (h *ProgramHandler) HandleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req struct {
		Status domain.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	t, err := h.Service.UpdateTaskStatus(r.Context(), taskID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			writeError(w, http.StatusNotFound, "task not found")
		case errors.Is(err, domain.ErrDependenciesOpen):
			writeError(w, http.StatusConflict, "task has uncompleted dependencies")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// HandleRecordFinding records a finding, scoring it when a vector is given.
func (h *ProgramHandler) HandleRecordFinding(w http.ResponseWriter, r *http.Request) {
	programID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	var req struct {
		TaskID      int64                  `json:"task_id"`
		Title       string                 `json:"title"`
		Description string                 `json:"description"`
		Severity    domain.FindingSeverity `json:"severity"`
		CVSSVector  string                 `json:"cvss_vector"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	f, err := h.Service.RecordFinding(r.Context(), programID, req.TaskID,
		req.Title, req.Description, req.Severity, req.CVSSVector)
	if err != nil {
		if errors.Is(err, domain.ErrProgramNotFound) {
			writeError(w, http.StatusNotFound, "program not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.WS != nil {
		h.WS.BroadcastFinding(f)
	}
	writeJSON(w, http.StatusCreated, f)
}

// HandleListFindings returns the findings of a program.
func (h *ProgramHandler) HandleListFindings(w http.ResponseWriter, r *http.Request) {
	programID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	findings, err := h.Service.ListFindings(r.Context(), programID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list findings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"findings": findings})
}

// HandleUpdateFindingStatus transitions a finding's triage status.
func (h *ProgramHandler) HandleUpdateFindingStatus(w http.ResponseWriter, r *http.Request) {
	findingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid finding id")
		return
	}

	var req struct {
		Status domain.FindingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	f, err := h.Service.UpdateFindingStatus(r.Context(), findingID, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrFindingNotFound) {
			writeError(w, http.StatusNotFound, "finding not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, f)
}
