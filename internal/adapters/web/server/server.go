package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/scaudit/internal/adapters/reporting"
	"github.com/lcalzada-xor/scaudit/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/scaudit/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
	"github.com/lcalzada-xor/scaudit/internal/core/services/program"
	reportingService "github.com/lcalzada-xor/scaudit/internal/core/services/reporting"
	"github.com/lcalzada-xor/scaudit/internal/core/services/triage"
)

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr        string
	AuthService ports.AuthService
	WSManager   *websocket.Manager

	AuthHandler      *handlers.AuthHandler
	ProgramHandler   *handlers.ProgramHandler
	CVSSHandler      *handlers.CVSSHandler
	AnalysisHandler  *handlers.AnalysisHandler
	WhitelistHandler *handlers.WhitelistHandler
	VulnDBHandler    *handlers.VulnDBHandler
	ReportHandler    *handlers.ReportHandler
	AuditHandler     *handlers.AuditHandler

	srv *http.Server
}

// Deps carries everything the server wires into its handlers.
type Deps struct {
	AuthService     ports.AuthService
	ProgramService  *program.Service
	TriageService   *triage.Service
	ReportGenerator *reportingService.ReportGenerator
	PDFExporter     *reporting.PDFExporter
	VulnRepo        ports.VulnRepository
	VulnMatcher     ports.VulnMatcher
	WhitelistRepo   ports.WhitelistRepository
	AuditRepo       ports.AuditRepository
}

// NewServer creates a new web server.
func NewServer(addr string, deps Deps) *Server {
	ws := websocket.NewManager()

	return &Server{
		Addr:        addr,
		AuthService: deps.AuthService,
		WSManager:   ws,

		AuthHandler:      handlers.NewAuthHandler(deps.AuthService),
		ProgramHandler:   handlers.NewProgramHandler(deps.ProgramService, ws),
		CVSSHandler:      handlers.NewCVSSHandler(),
		AnalysisHandler:  handlers.NewAnalysisHandler(deps.TriageService, deps.VulnMatcher, ws),
		WhitelistHandler: handlers.NewWhitelistHandler(deps.WhitelistRepo),
		VulnDBHandler:    handlers.NewVulnDBHandler(deps.VulnRepo),
		ReportHandler:    handlers.NewReportHandler(deps.ReportGenerator, deps.PDFExporter),
		AuditHandler:     handlers.NewAuditHandler(deps.AuditRepo),
	}
}

// Run starts the server and blocks until the context is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	handler := SetupRoutes(s)

	// "scaudit-server" names the root span of each request.
	instrumentedHandler := otelhttp.NewHandler(handler, "scaudit-server")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumentedHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Println("Web server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// BroadcastLog sends a log message to all connected clients.
func (s *Server) BroadcastLog(message, level string) {
	s.WSManager.BroadcastLog(message, level)
}
