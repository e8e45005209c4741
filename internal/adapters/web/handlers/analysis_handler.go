package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lcalzada-xor/scaudit/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
	"github.com/lcalzada-xor/scaudit/internal/core/services/analyzer"
	"github.com/lcalzada-xor/scaudit/internal/core/services/triage"
)

// AnalysisHandler exposes AI analysis, triage and static scanning.
type AnalysisHandler struct {
	Triage  *triage.Service
	Matcher ports.VulnMatcher
	WS      *websocket.Manager
}

func NewAnalysisHandler(svc *triage.Service, matcher ports.VulnMatcher, ws *websocket.Manager) *AnalysisHandler {
	return &AnalysisHandler{Triage: svc, Matcher: matcher, WS: ws}
}

// HandleAnalyze runs an AI analysis over the submitted contract source and
// stores the result under the program.
func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	programID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	var req struct {
		ContractCode string `json:"contract_code"`
		Type         string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := h.Triage.AnalyzeContract(r.Context(), programID, req.ContractCode, domain.AnalysisType(req.Type))
	if err != nil {
		if errors.Is(err, triage.ErrEmptyContract) {
			writeError(w, http.StatusBadRequest, "contract_code is required")
			return
		}
		writeError(w, http.StatusBadGateway, "analysis failed: "+err.Error())
		return
	}

	if h.WS != nil {
		h.WS.BroadcastAnalysis(analysis)
	}
	writeJSON(w, http.StatusCreated, analysis)
}

// HandleListAnalyses returns the stored analyses for a program, newest first.
func (h *AnalysisHandler) HandleListAnalyses(w http.ResponseWriter, r *http.Request) {
	programID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	analyses, err := h.Triage.ListAnalyses(r.Context(), programID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analyses": analyses})
}

// HandleTriage asks the model for a severity assessment of a finding
// description and rescoring of any CVSS vector it proposes.
func (h *AnalysisHandler) HandleTriage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Triage.Triage(r.Context(), req.Description)
	if err != nil {
		if errors.Is(err, triage.ErrEmptyDescription) {
			writeError(w, http.StatusBadRequest, "description is required")
			return
		}
		writeError(w, http.StatusBadGateway, "triage failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleStaticScan runs the local detectors and the pattern knowledge base
// over the submitted source. No AI call is involved.
func (h *AnalysisHandler) HandleStaticScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContractCode string `json:"contract_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ContractCode == "" {
		writeError(w, http.StatusBadRequest, "contract_code is required")
		return
	}

	info := analyzer.ExtractContractInfo(req.ContractCode)
	checks := analyzer.CheckCommonVulnerabilities(req.ContractCode)

	matches := []domain.VulnMatch{}
	if h.Matcher != nil {
		found, err := h.Matcher.Check(r.Context(), req.ContractCode)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "pattern scan failed: "+err.Error())
			return
		}
		matches = found
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contract_info": info,
		"checks":        checks,
		"kb_matches":    matches,
	})
}
