package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lcalzada-xor/scaudit/internal/adapters/ai"
	"github.com/lcalzada-xor/scaudit/internal/adapters/reporting"
	"github.com/lcalzada-xor/scaudit/internal/adapters/storage"
	"github.com/lcalzada-xor/scaudit/internal/adapters/vulndb"
	webserver "github.com/lcalzada-xor/scaudit/internal/adapters/web/server"
	"github.com/lcalzada-xor/scaudit/internal/config"
	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
	"github.com/lcalzada-xor/scaudit/internal/core/services/audit"
	"github.com/lcalzada-xor/scaudit/internal/core/services/auth"
	"github.com/lcalzada-xor/scaudit/internal/core/services/program"
	reportingService "github.com/lcalzada-xor/scaudit/internal/core/services/reporting"
	"github.com/lcalzada-xor/scaudit/internal/core/services/triage"
	"github.com/lcalzada-xor/scaudit/internal/telemetry"
)

// Application holds the core components of the application. It acts as the
// facade for the entire system, orchestrating services and infrastructure.
type Application struct {
	Config *config.Config

	Store    *storage.SQLiteAdapter
	VulnRepo ports.VulnRepository

	AuthService    *auth.AuthService
	AuditService   *audit.AuditService
	ProgramService *program.Service
	TriageService  *triage.Service

	WebServer *webserver.Server
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

func (app *Application) bootstrap() error {
	telemetry.InitMetrics()

	if err := app.initStorage(); err != nil {
		return err
	}
	if err := app.initVulnDB(); err != nil {
		return err
	}

	app.AuditService = audit.NewAuditService(app.Store)
	app.AuthService = auth.NewAuthService(app.Store, app.Config.SessionTTL)
	app.ProgramService = program.NewService(app.Store, app.Store, app.Store, app.AuditService)
	app.TriageService = triage.NewService(app.buildAnalyzer(), app.Store, app.AuditService)

	if err := app.ensureDefaultAdmin(); err != nil {
		log.Printf("Warning: could not ensure default admin: %v", err)
	}

	app.initServer()
	return nil
}

func (app *Application) initStorage() error {
	if err := os.MkdirAll(filepath.Dir(app.Config.DBPath), 0755); err != nil {
		return fmt.Errorf("failed to create DB directory: %w", err)
	}

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to init system storage: %w", err)
	}
	app.Store = store
	return nil
}

func (app *Application) initVulnDB() error {
	repo, err := vulndb.NewSQLiteRepository(app.Config.VulnDBPath)
	if err != nil {
		return fmt.Errorf("failed to init vulnerability database: %w", err)
	}
	app.VulnRepo = repo

	if count, err := repo.TotalCount(context.Background()); err == nil {
		log.Printf("Vulnerability knowledge base loaded: %d patterns", count)
	}
	return nil
}

// buildAnalyzer returns the Anthropic client, or a stub that rejects every
// request when no API key is configured. The rest of the system keeps
// working without AI.
func (app *Application) buildAnalyzer() ports.ContractAnalyzer {
	if app.Config.AnthropicAPIKey == "" {
		log.Println("Warning: ANTHROPIC_API_KEY not set, AI analysis disabled")
		return disabledAnalyzer{}
	}

	client, err := ai.NewAnthropicClient(app.Config.AnthropicAPIKey, app.Config.AnthropicModel)
	if err != nil {
		log.Printf("Warning: AI client initialization failed: %v", err)
		return disabledAnalyzer{}
	}
	return client
}

type disabledAnalyzer struct{}

func (disabledAnalyzer) Complete(context.Context, string) (string, error) {
	return "", fmt.Errorf("AI analysis disabled: no API key configured")
}

func (disabledAnalyzer) Model() string { return "disabled" }

func (app *Application) ensureDefaultAdmin() error {
	if _, err := app.Store.GetByUsername(context.Background(), "admin"); err != nil {
		log.Println("Provisioning default admin user...")
		return app.AuthService.CreateUser(context.Background(), domain.User{
			Username: "admin",
			Role:     domain.RoleAdmin,
		}, "changeit")
	}
	return nil
}

func (app *Application) initServer() {
	generator := reportingService.NewReportGenerator(app.Store, app.Store, app.Store, app.Store)

	app.WebServer = webserver.NewServer(app.Config.Addr, webserver.Deps{
		AuthService:     app.AuthService,
		ProgramService:  app.ProgramService,
		TriageService:   app.TriageService,
		ReportGenerator: generator,
		PDFExporter:     reporting.NewPDFExporter(),
		VulnRepo:        app.VulnRepo,
		VulnMatcher:     vulndb.NewPatternMatcher(app.VulnRepo),
		WhitelistRepo:   app.Store,
		AuditRepo:       app.Store,
	})
}

// Run starts the application components and blocks until the context is
// cancelled or a component fails.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting scaudit components...")

	errChan := make(chan error, 1)
	go func() {
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	slog.Info("scaudit ready", "addr", app.Config.Addr)

	select {
	case <-ctx.Done():
		slog.Info("Termination signal received")
	case err := <-errChan:
		return err
	}

	return app.cleanup()
}

func (app *Application) cleanup() error {
	slog.Info("Cleaning up resources...")

	if app.VulnRepo != nil {
		if err := app.VulnRepo.Close(); err != nil {
			log.Printf("Error closing vulnerability database: %v", err)
		}
	}
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			log.Printf("Error closing storage: %v", err)
		}
	}
	return nil
}
