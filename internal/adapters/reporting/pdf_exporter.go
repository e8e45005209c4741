// Package reporting renders audit report summaries to PDF.
package reporting

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

// PDFExporter exports reports to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportSummary generates a professional PDF from an audit report summary
func (e *PDFExporter) ExportSummary(report *domain.ReportSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addRiskScore(pdf, report)
	e.addStatistics(pdf, report)
	e.addTopFindings(pdf, report)
	e.addRecommendations(pdf, report)
	e.addFooter(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addHeader adds the report header
func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report *domain.ReportSummary) {
	// Title
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 15, report.Metadata.Title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Program name
	if report.Metadata.ProgramName != "" {
		pdf.SetFont("Arial", "", 14)
		pdf.SetTextColor(100, 100, 100) // Gray
		pdf.CellFormat(0, 8, report.Metadata.ProgramName, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	dateStr := fmt.Sprintf("Generated: %s", report.Metadata.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 6, dateStr, "", 1, "L", false, 0, "")
	if report.Metadata.GeneratedBy != "" {
		pdf.CellFormat(0, 6, "Generated by: "+report.Metadata.GeneratedBy, "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
}

// addRiskScore adds the prominent risk score display
func (e *PDFExporter) addRiskScore(pdf *gofpdf.Fpdf, report *domain.ReportSummary) {
	r, g, b := e.getRiskColor(report.RiskScore)

	// Draw colored box
	pdf.SetFillColor(r, g, b)
	pdf.Rect(20, pdf.GetY(), 170, 30, "F")

	y := pdf.GetY()

	// Risk score number
	pdf.SetFont("Arial", "B", 36)
	pdf.SetTextColor(255, 255, 255) // White
	pdf.SetXY(25, y+5)
	pdf.CellFormat(80, 20, fmt.Sprintf("%.1f/10", report.RiskScore), "", 0, "L", false, 0, "")

	// Risk level text
	pdf.SetFont("Arial", "B", 18)
	pdf.SetXY(110, y+8)
	pdf.CellFormat(80, 14, fmt.Sprintf("%s Risk", report.RiskLevel), "", 0, "L", false, 0, "")

	pdf.SetY(y + 35)
	pdf.Ln(5)
}

// getRiskColor returns RGB color based on risk score
func (e *PDFExporter) getRiskColor(score float64) (r, g, b int) {
	switch {
	case score >= 8.0:
		return 220, 53, 69 // Red (Critical)
	case score >= 6.0:
		return 255, 149, 0 // Orange (High)
	case score >= 4.0:
		return 255, 204, 0 // Yellow (Medium)
	default:
		return 52, 199, 89 // Green (Low)
	}
}

// addStatistics adds the audit progress and finding statistics
func (e *PDFExporter) addStatistics(pdf *gofpdf.Fpdf, report *domain.ReportSummary) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Audit Overview", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(60, 60, 60)

	sc := report.Stats.SeverityCounts
	stats := []struct {
		label string
		value string
		color []int
	}{
		{"Tasks Completed", fmt.Sprintf("%d / %d", report.Stats.CompletedTasks, report.Stats.TotalTasks), []int{0, 102, 204}},
		{"Total Findings", fmt.Sprintf("%d", report.Stats.TotalFindings), []int{0, 102, 204}},
		{"Open Findings", fmt.Sprintf("%d", report.Stats.OpenFindings), []int{220, 53, 69}},
		{"AI Analyses Run", fmt.Sprintf("%d", report.Stats.AnalysesRun), []int{0, 102, 204}},
		{"Critical", fmt.Sprintf("%d", sc[domain.SeverityCritical]), []int{220, 53, 69}},
		{"High", fmt.Sprintf("%d", sc[domain.SeverityHigh]), []int{255, 149, 0}},
		{"Medium", fmt.Sprintf("%d", sc[domain.SeverityMedium]), []int{255, 204, 0}},
		{"Low / Info", fmt.Sprintf("%d", sc[domain.SeverityLow]+sc[domain.SeverityInfo]), []int{52, 199, 89}},
	}

	// Display in 2 columns
	colWidth := 85.0
	for i, stat := range stats {
		x := 20.0
		if i%2 == 1 {
			x = 105.0
		}

		pdf.SetXY(x, pdf.GetY())

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(50, 7, stat.label+":", "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(stat.color[0], stat.color[1], stat.color[2])
		pdf.CellFormat(colWidth-50, 7, stat.value, "", 0, "R", false, 0, "")

		if i%2 == 1 {
			pdf.Ln(7)
		}
	}

	pdf.Ln(10)
}

// addTopFindings adds the top findings table
func (e *PDFExporter) addTopFindings(pdf *gofpdf.Fpdf, report *domain.ReportSummary) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Top Findings", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(report.TopFindings) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No open findings", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	// Table header
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)

	pdf.CellFormat(15, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(75, 8, "Finding", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Severity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 8, "CVSS", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Status", "1", 1, "C", true, 0, "")

	// Table rows
	pdf.SetFont("Arial", "", 9)
	for i, f := range report.TopFindings {
		r, g, b := e.getSeverityColor(f.Severity)

		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")

		title := f.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		pdf.CellFormat(75, 7, title, "1", 0, "L", false, 0, "")

		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(25, 7, string(f.Severity), "1", 0, "C", false, 0, "")

		score := "-"
		if f.CVSSScore > 0 {
			score = fmt.Sprintf("%.1f", f.CVSSScore)
		}
		pdf.CellFormat(20, 7, score, "1", 0, "C", false, 0, "")

		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(35, 7, string(f.Status), "1", 1, "C", false, 0, "")
	}

	pdf.Ln(8)
}

// getSeverityColor returns RGB color based on severity
func (e *PDFExporter) getSeverityColor(severity domain.FindingSeverity) (r, g, b int) {
	switch severity {
	case domain.SeverityCritical:
		return 220, 53, 69 // Red
	case domain.SeverityHigh:
		return 255, 149, 0 // Orange
	case domain.SeverityMedium:
		return 255, 204, 0 // Yellow
	default:
		return 52, 199, 89 // Green
	}
}

// addRecommendations adds the recommendations section
func (e *PDFExporter) addRecommendations(pdf *gofpdf.Fpdf, report *domain.ReportSummary) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Recommendations", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for i, rec := range report.Recommendations {
		if i >= 5 { // Limit to 5 recommendations
			break
		}

		// Check if we need a new page
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(0, 51, 102)
		pdf.CellFormat(8, 6, fmt.Sprintf("%d.", i+1), "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.MultiCell(0, 6, rec, "", "L", false)
		pdf.Ln(2)
	}

	pdf.Ln(5)
}

// addFooter adds the report footer
func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, report *domain.ReportSummary) {
	pdf.SetY(-20)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 5, fmt.Sprintf("Report ID: %s", report.Metadata.ID), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Generated by scaudit", "", 1, "C", false, 0, "")
}
