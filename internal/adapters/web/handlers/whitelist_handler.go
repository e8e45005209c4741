package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
)

// WhitelistHandler exposes the public signup endpoint and the protected
// contact listing.
type WhitelistHandler struct {
	Repo ports.WhitelistRepository
}

func NewWhitelistHandler(repo ports.WhitelistRepository) *WhitelistHandler {
	return &WhitelistHandler{Repo: repo}
}

// HandleSignup registers an early-access contact. This endpoint is public.
func (h *WhitelistHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email        string `json:"email"`
		Name         string `json:"name"`
		Organization string `json:"organization"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact, err := domain.NewWhitelistContact(req.Email, req.Name, req.Organization)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.SaveContact(r.Context(), contact); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

// HandleListContacts returns all signups.
func (h *WhitelistHandler) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Repo.ListContacts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts, "count": len(contacts)})
}
