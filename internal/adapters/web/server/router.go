package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lcalzada-xor/scaudit/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/scaudit/internal/core/domain"
)

// SetupRoutes builds the full route table. Write operations require the
// auditor role; reads are open to any authenticated user.
func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()

	// Public API (rate limited): 5 login attempts per minute, 10 signups
	// per 10 minutes, both per IP.
	loginLimiter := middleware.NewRateLimiter(5, 1*time.Minute)
	signupLimiter := middleware.NewRateLimiter(10, 10*time.Minute)

	r.Handle("/api/login",
		middleware.RateLimitMiddleware(loginLimiter)(http.HandlerFunc(s.AuthHandler.HandleLogin))).
		Methods(http.MethodPost)
	r.Handle("/api/whitelist/signup",
		middleware.RateLimitMiddleware(signupLimiter)(http.HandlerFunc(s.WhitelistHandler.HandleSignup))).
		Methods(http.MethodPost)

	// Protected API
	auth := middleware.AuthMiddleware(s.AuthService)
	requireAuditor := middleware.RoleMiddleware(domain.RoleAuditor)
	requireAdmin := middleware.RoleMiddleware(domain.RoleAdmin)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth)

	api.HandleFunc("/logout", s.AuthHandler.HandleLogout).Methods(http.MethodPost)
	api.HandleFunc("/me", s.AuthHandler.HandleMe).Methods(http.MethodGet)

	// Programs and the audit workflow
	api.Handle("/programs", requireAuditor(http.HandlerFunc(s.ProgramHandler.HandleCreateProgram))).Methods(http.MethodPost)
	api.HandleFunc("/programs", s.ProgramHandler.HandleListPrograms).Methods(http.MethodGet)
	api.HandleFunc("/programs/{id:[0-9]+}", s.ProgramHandler.HandleGetProgram).Methods(http.MethodGet)
	api.Handle("/programs/{id:[0-9]+}/tasks", requireAuditor(http.HandlerFunc(s.ProgramHandler.HandleAddTask))).Methods(http.MethodPost)
	api.HandleFunc("/programs/{id:[0-9]+}/tasks", s.ProgramHandler.HandleListTasks).Methods(http.MethodGet)
	api.Handle("/tasks/{id:[0-9]+}/status", requireAuditor(http.HandlerFunc(s.ProgramHandler.HandleUpdateTaskStatus))).Methods(http.MethodPatch)
	api.Handle("/programs/{id:[0-9]+}/findings", requireAuditor(http.HandlerFunc(s.ProgramHandler.HandleRecordFinding))).Methods(http.MethodPost)
	api.HandleFunc("/programs/{id:[0-9]+}/findings", s.ProgramHandler.HandleListFindings).Methods(http.MethodGet)
	api.Handle("/findings/{id:[0-9]+}/status", requireAuditor(http.HandlerFunc(s.ProgramHandler.HandleUpdateFindingStatus))).Methods(http.MethodPatch)

	// Scoring
	api.HandleFunc("/cvss/score", s.CVSSHandler.HandleScore).Methods(http.MethodPost)

	// AI analysis and static scanning
	api.Handle("/programs/{id:[0-9]+}/analyze", requireAuditor(http.HandlerFunc(s.AnalysisHandler.HandleAnalyze))).Methods(http.MethodPost)
	api.HandleFunc("/programs/{id:[0-9]+}/analyses", s.AnalysisHandler.HandleListAnalyses).Methods(http.MethodGet)
	api.Handle("/triage", requireAuditor(http.HandlerFunc(s.AnalysisHandler.HandleTriage))).Methods(http.MethodPost)
	api.HandleFunc("/scan", s.AnalysisHandler.HandleStaticScan).Methods(http.MethodPost)

	// Vulnerability knowledge base
	api.HandleFunc("/vulndb/patterns", s.VulnDBHandler.HandleListPatterns).Methods(http.MethodGet)
	api.HandleFunc("/vulndb/search", s.VulnDBHandler.HandleSearch).Methods(http.MethodGet)
	api.HandleFunc("/vulndb/categories", s.VulnDBHandler.HandleCategories).Methods(http.MethodGet)
	api.HandleFunc("/vulndb/stats", s.VulnDBHandler.HandleStats).Methods(http.MethodGet)

	// Reports
	api.HandleFunc("/programs/{id:[0-9]+}/report", s.ReportHandler.HandleGetSummary).Methods(http.MethodGet)
	api.HandleFunc("/programs/{id:[0-9]+}/report/pdf", s.ReportHandler.HandleDownloadPDF).Methods(http.MethodGet)

	// Administration
	api.Handle("/whitelist", requireAdmin(http.HandlerFunc(s.WhitelistHandler.HandleListContacts))).Methods(http.MethodGet)
	api.Handle("/audit-logs", requireAdmin(http.HandlerFunc(s.AuditHandler.HandleGetLogs))).Methods(http.MethodGet)

	// WebSocket endpoint (protected)
	r.Handle("/ws", auth(http.HandlerFunc(s.WSManager.HandleWebSocket)))

	// Prometheus metrics (protected)
	r.Handle("/metrics", auth(promhttp.Handler())).Methods(http.MethodGet)

	return r
}
