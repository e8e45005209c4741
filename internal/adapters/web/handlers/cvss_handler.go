package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lcalzada-xor/scaudit/internal/core/cvss"
)

// CVSSHandler exposes the scoring engine directly, for ad-hoc scoring from
// the UI without recording a finding.
type CVSSHandler struct{}

// NewCVSSHandler creates a new CVSSHandler
func NewCVSSHandler() *CVSSHandler {
	return &CVSSHandler{}
}

// HandleScore scores a vector. The request carries either a vector string or
// an explicit metric map; the metric map wins when both are present.
func (h *CVSSHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Vector  string            `json:"vector"`
		Metrics map[string]string `json:"metrics"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	var (
		v   cvss.MetricVector
		err error
	)
	switch {
	case len(req.Metrics) > 0:
		for metric, value := range req.Metrics {
			if err = v.Set(metric, value); err != nil {
				break
			}
		}
	case req.Vector != "":
		v, err = cvss.ParseVector(req.Vector)
	default:
		writeError(w, http.StatusBadRequest, "vector or metrics required")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := cvss.Evaluate(v)
	if err != nil {
		var invalid *cvss.InvalidMetricError
		if errors.Is(err, cvss.ErrIncompleteVector) || errors.As(err, &invalid) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "scoring failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
