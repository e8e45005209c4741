// Package triage drives AI-assisted contract review. It builds analysis
// prompts, sends them to the configured model, persists the results and
// extracts machine-readable CVSS vectors from free-form triage replies.
package triage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lcalzada-xor/scaudit/internal/core/cvss"
	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
	"github.com/lcalzada-xor/scaudit/internal/telemetry"
)

var (
	ErrEmptyContract    = errors.New("contract code is empty")
	ErrEmptyDescription = errors.New("vulnerability description is empty")
)

// vectorRegex finds a CVSS v3.1 base vector (optionally with temporal
// metrics) inside free-form model output.
var vectorRegex = regexp.MustCompile(
	`(?:CVSS:3\.1/)?AV:[NALP]/AC:[LH]/PR:[NLH]/UI:[NR]/S:[UC]/C:[NLH]/I:[NLH]/A:[NLH](?:/E:[XUPFH])?(?:/RL:[XOTWU])?(?:/RC:[XURC])?`)

// TriageResult is the outcome of an AI triage pass over a vulnerability
// description. Vector, Score and Severity are only populated when the model
// suggested a parseable CVSS vector.
type TriageResult struct {
	Assessment string  `json:"assessment"`
	Model      string  `json:"model"`
	Vector     string  `json:"cvss_vector,omitempty"`
	Score      float64 `json:"cvss_score,omitempty"`
	Severity   string  `json:"cvss_severity,omitempty"`
}

// Service runs AI analyses and vulnerability triage.
type Service struct {
	ai       ports.ContractAnalyzer
	analyses ports.AnalysisRepository
	auditor  ports.AuditService
}

// NewService creates the triage service.
func NewService(ai ports.ContractAnalyzer, analyses ports.AnalysisRepository, auditor ports.AuditService) *Service {
	return &Service{ai: ai, analyses: analyses, auditor: auditor}
}

// AnalyzeContract sends contract source through the model with the prompt
// template selected by the analysis type and persists the result.
func (s *Service) AnalyzeContract(ctx context.Context, programID int64, contractCode string, analysisType domain.AnalysisType) (*domain.Analysis, error) {
	if strings.TrimSpace(contractCode) == "" {
		return nil, ErrEmptyContract
	}
	if !analysisType.IsValid() {
		analysisType = domain.AnalysisGeneral
	}

	reply, err := s.ai.Complete(ctx, analysisPrompt(analysisType, contractCode))
	if err != nil {
		telemetry.AIErrors.WithLabelValues(string(analysisType)).Inc()
		return nil, fmt.Errorf("contract analysis failed: %w", err)
	}

	a := &domain.Analysis{
		ProgramID:    programID,
		ContractCode: contractCode,
		Result:       reply,
		Type:         analysisType,
		Model:        s.ai.Model(),
	}
	if err := s.analyses.SaveAnalysis(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	telemetry.AnalysesRun.WithLabelValues(string(analysisType)).Inc()
	s.audit(ctx, domain.ActionAnalysisRun, fmt.Sprintf("program:%d", programID), string(analysisType))
	return a, nil
}

// ListAnalyses returns stored analyses for a program.
func (s *Service) ListAnalyses(ctx context.Context, programID int64) ([]domain.Analysis, error) {
	return s.analyses.ListAnalyses(ctx, programID)
}

// Triage asks the model to assess a vulnerability description. If the reply
// contains a CVSS vector it is re-scored locally so the returned score and
// severity come from our own engine, not the model's arithmetic.
func (s *Service) Triage(ctx context.Context, description string) (*TriageResult, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	reply, err := s.ai.Complete(ctx, triagePromptFor(description))
	if err != nil {
		telemetry.AIErrors.WithLabelValues("triage").Inc()
		return nil, fmt.Errorf("vulnerability triage failed: %w", err)
	}

	result := &TriageResult{
		Assessment: reply,
		Model:      s.ai.Model(),
	}

	if raw := vectorRegex.FindString(reply); raw != "" {
		if v, err := cvss.ParseVector(raw); err == nil {
			if scored, err := cvss.Evaluate(v); err == nil {
				result.Vector = scored.Vector
				result.Score = scored.Score
				result.Severity = scored.Severity
				telemetry.ScoresComputed.WithLabelValues(scored.Severity).Inc()
			}
		}
	}

	s.audit(ctx, domain.ActionTriageRun, "triage", truncate(description, 120))
	return result, nil
}

func (s *Service) audit(ctx context.Context, action domain.AuditAction, target, details string) {
	if s.auditor == nil {
		return
	}
	// Best effort: a failed audit write must not fail the operation.
	_ = s.auditor.Log(ctx, action, target, details)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
