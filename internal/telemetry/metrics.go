package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ScoresComputed counts CVSS evaluations performed, labeled by severity
	ScoresComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scaudit",
			Name:      "scores_computed_total",
			Help:      "Total number of CVSS scores computed",
		},
		[]string{"severity"},
	)

	// FindingsRecorded counts findings persisted across all programs
	FindingsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scaudit",
			Name:      "findings_recorded_total",
			Help:      "Total number of findings recorded",
		},
		[]string{"severity"},
	)

	// AnalysesRun counts AI contract analyses by analysis type
	AnalysesRun = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scaudit",
			Name:      "analyses_total",
			Help:      "Total number of contract analyses run",
		},
		[]string{"type"},
	)

	// AIErrors counts failed calls to the AI backend
	AIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scaudit",
			Name:      "ai_errors_total",
			Help:      "Total number of failed AI analysis requests",
		},
		[]string{"type"},
	)

	// PatternMatches counts static vulnerability pattern hits by category
	PatternMatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scaudit",
			Name:      "pattern_matches_total",
			Help:      "Total number of vulnerability pattern matches",
		},
		[]string{"category"},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		// Register metrics, ignoring errors if already registered
		// This prevents panics when metrics are already in the registry
		prometheus.DefaultRegisterer.Register(ScoresComputed)
		prometheus.DefaultRegisterer.Register(FindingsRecorded)
		prometheus.DefaultRegisterer.Register(AnalysesRun)
		prometheus.DefaultRegisterer.Register(AIErrors)
		prometheus.DefaultRegisterer.Register(PatternMatches)
	})
}
