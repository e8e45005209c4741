package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lcalzada-xor/scaudit/internal/adapters/reporting"
	"github.com/lcalzada-xor/scaudit/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	reportsvc "github.com/lcalzada-xor/scaudit/internal/core/services/reporting"
)

// ReportHandler generates audit summary reports as JSON or PDF.
type ReportHandler struct {
	Generator *reportsvc.ReportGenerator
	Exporter  *reporting.PDFExporter
}

func NewReportHandler(gen *reportsvc.ReportGenerator, exporter *reporting.PDFExporter) *ReportHandler {
	return &ReportHandler{Generator: gen, Exporter: exporter}
}

func (h *ReportHandler) generate(r *http.Request) (*domain.ReportSummary, int, error) {
	programID, err := pathID(r, "id")
	if err != nil {
		return nil, http.StatusBadRequest, errors.New("invalid program id")
	}

	generatedBy := "system"
	if user := middleware.UserFromContext(r.Context()); user != nil {
		generatedBy = user.Username
	}

	report, err := h.Generator.Generate(r.Context(), programID, generatedBy)
	if err != nil {
		if errors.Is(err, domain.ErrProgramNotFound) {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusInternalServerError, err
	}
	return report, http.StatusOK, nil
}

// HandleGetSummary returns the report as JSON.
func (h *ReportHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	report, status, err := h.generate(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleDownloadPDF renders the report as a PDF attachment.
func (h *ReportHandler) HandleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	report, status, err := h.generate(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	data, err := h.Exporter.ExportSummary(report)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "pdf generation failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="audit-report-%s.pdf"`, report.Metadata.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
