package handlers

import (
	"net/http"
	"strings"

	"github.com/lcalzada-xor/scaudit/internal/core/ports"
)

// VulnDBHandler exposes read access to the vulnerability knowledge base.
type VulnDBHandler struct {
	Repo ports.VulnRepository
}

func NewVulnDBHandler(repo ports.VulnRepository) *VulnDBHandler {
	return &VulnDBHandler{Repo: repo}
}

// HandleListPatterns lists known patterns, optionally filtered by category.
func (h *VulnDBHandler) HandleListPatterns(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	patterns, err := h.Repo.ListPatterns(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"patterns": patterns, "count": len(patterns)})
}

// HandleSearch searches patterns by keyword.
func (h *VulnDBHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	patterns, err := h.Repo.SearchPatterns(r.Context(), strings.Fields(q))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"patterns": patterns, "count": len(patterns)})
}

// HandleCategories lists the distinct pattern categories.
func (h *VulnDBHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Repo.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// HandleStats reports knowledge base size.
func (h *VulnDBHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	total, err := h.Repo.TotalCount(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	categories, err := h.Repo.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_patterns": total,
		"categories":     len(categories),
	})
}
