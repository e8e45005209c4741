package handlers

import (
	"net/http"
	"strconv"

	"github.com/lcalzada-xor/scaudit/internal/core/ports"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	Repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{Repo: repo}
}

// HandleGetLogs returns the most recent audit log entries, newest first.
// Accepts an optional ?limit= parameter, default 100.
func (h *AuditHandler) HandleGetLogs(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	logs, err := h.Repo.ListAuditLogs(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs, "count": len(logs)})
}
