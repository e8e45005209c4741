package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/cvss/score", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleScoreFromVector(t *testing.T) {
	h := NewCVSSHandler()
	rec := postJSON(t, h.HandleScore, map[string]any{
		"vector": "AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Score    float64 `json:"score"`
		Severity string  `json:"severity"`
		Vector   string  `json:"vector"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10.0, resp.Score)
	assert.Equal(t, "Critical", resp.Severity)
	assert.Equal(t, "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H", resp.Vector)
}

func TestHandleScoreFromMetricsMap(t *testing.T) {
	h := NewCVSSHandler()
	rec := postJSON(t, h.HandleScore, map[string]any{
		"metrics": map[string]string{
			"AV": "N", "AC": "L", "PR": "N", "UI": "N",
			"S": "U", "C": "N", "I": "N", "A": "N",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Score    float64 `json:"score"`
		Severity string  `json:"severity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.Score)
	assert.Equal(t, "None", resp.Severity)
}

func TestHandleScoreIncompleteVector(t *testing.T) {
	h := NewCVSSHandler()
	rec := postJSON(t, h.HandleScore, map[string]any{
		"metrics": map[string]string{"AV": "N", "AC": "L"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleScoreInvalidMetricValue(t *testing.T) {
	h := NewCVSSHandler()
	rec := postJSON(t, h.HandleScore, map[string]any{
		"metrics": map[string]string{
			"AV": "Z", "AC": "L", "PR": "N", "UI": "N",
			"S": "U", "C": "H", "I": "H", "A": "H",
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleScoreMissingInput(t *testing.T) {
	h := NewCVSSHandler()
	rec := postJSON(t, h.HandleScore, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
