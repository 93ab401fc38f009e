package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"contrib.go.opencensus.io/integrations/ocsql"

	"github.com/boardstack/boardstack/config"
	"github.com/boardstack/boardstack/internal/database"
	"github.com/boardstack/boardstack/internal/domain"
	httpHandler "github.com/boardstack/boardstack/internal/http"
	"github.com/boardstack/boardstack/internal/http/middleware"
	"github.com/boardstack/boardstack/internal/repository"
	"github.com/boardstack/boardstack/internal/service"
	"github.com/boardstack/boardstack/pkg/logger"
	"github.com/boardstack/boardstack/pkg/storage"
)

// App assembles the server: config, database, repositories, services and
// HTTP handlers, in that order.
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB
	mux    *http.ServeMux
	server *http.Server

	fileStorage storage.FileStorage

	// Repositories
	userRepo      domain.UserRepository
	workspaceRepo domain.WorkspaceRepository
	projectRepo   domain.ProjectRepository
	taskRepo      domain.TaskRepository
	analyticsRepo domain.AnalyticsRepository

	// Services
	authService      domain.AuthService
	workspaceService domain.WorkspaceServiceInterface
	projectService   domain.ProjectServiceInterface
	taskService      domain.TaskServiceInterface
	analyticsService domain.AnalyticsServiceInterface

	// Graceful shutdown
	shuttingDown atomic.Bool
	inFlight     sync.WaitGroup
}

type Option func(*App)

// WithLogger overrides the default logger, used by tests.
func WithLogger(l logger.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithDB injects an already-open database handle, used by tests.
func WithDB(db *sql.DB) Option {
	return func(a *App) {
		a.db = db
	}
}

func NewApp(cfg *config.Config, opts ...Option) *App {
	a := &App{
		config: cfg,
		logger: logger.NewLoggerWithLevel(cfg.LogLevel),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// InitDB opens the system database and ensures the schema exists. When
// tracing is enabled the connection goes through the ocsql-instrumented
// driver so every query carries a span.
func (a *App) InitDB() error {
	if a.db == nil {
		driverName := "postgres"
		if a.config.Tracing.Enabled {
			var err error
			driverName, err = ocsql.Register("postgres", ocsql.WithAllTraceOptions())
			if err != nil {
				return fmt.Errorf("failed to register traced sql driver: %w", err)
			}
			a.logger.Info("Database tracing enabled")
		}

		db, err := database.Connect(&a.config.Database, driverName)
		if err != nil {
			return err
		}
		a.db = db
	}

	if err := database.InitializeDatabase(a.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	a.logger.WithField("database", a.config.Database.DBName).Info("Database initialized")
	return nil
}

// InitStorage selects the image store. Without bucket credentials the
// no-op store is used and stale images simply accumulate.
func (a *App) InitStorage() error {
	if a.fileStorage != nil {
		return nil
	}

	if !a.config.Storage.IsConfigured() {
		a.logger.Info("File storage not configured, image deletes disabled")
		a.fileStorage = storage.NoopStorage{}
		return nil
	}

	fs, err := storage.NewS3Storage(a.config.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}
	a.fileStorage = fs
	a.logger.WithField("bucket", a.config.Storage.Bucket).Info("File storage initialized")
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	a.userRepo = repository.NewUserRepository(a.db)
	a.workspaceRepo = repository.NewWorkspaceRepository(a.db)
	a.projectRepo = repository.NewProjectRepository(a.db)
	a.taskRepo = repository.NewTaskRepository(a.db)
	a.analyticsRepo = repository.NewAnalyticsRepository(a.db)
	return nil
}

// InitServices initializes all services
func (a *App) InitServices() error {
	a.authService = service.NewAuthService(a.userRepo, a.logger, a.config.Security)
	a.workspaceService = service.NewWorkspaceService(a.workspaceRepo, a.authService, a.fileStorage, a.logger)
	a.projectService = service.NewProjectService(a.projectRepo, a.workspaceRepo, a.authService, a.fileStorage, a.logger)
	a.taskService = service.NewTaskService(a.taskRepo, a.projectRepo, a.workspaceRepo, a.authService, a.logger)
	a.analyticsService = service.NewAnalyticsService(a.analyticsRepo, a.projectRepo, a.workspaceRepo, a.authService, a.logger)
	return nil
}

// InitHandlers initializes all HTTP handlers and routes
func (a *App) InitHandlers() error {
	a.mux = http.NewServeMux()

	secure := middleware.NewAuthMiddleware(a.authService)

	userHandler := httpHandler.NewUserHandler(a.authService, secure, a.logger)
	workspaceHandler := httpHandler.NewWorkspaceHandler(a.workspaceService, a.analyticsService, secure, a.logger)
	projectHandler := httpHandler.NewProjectHandler(a.projectService, a.analyticsService, secure, a.logger)
	taskHandler := httpHandler.NewTaskHandler(a.taskService, secure, a.logger)

	userHandler.RegisterRoutes(a.mux)
	workspaceHandler.RegisterRoutes(a.mux)
	projectHandler.RegisterRoutes(a.mux)
	taskHandler.RegisterRoutes(a.mux)

	a.mux.HandleFunc("/health", a.handleHealth)

	return nil
}

// Initialize runs every init step in dependency order.
func (a *App) Initialize() error {
	if err := a.InitDB(); err != nil {
		return err
	}
	if err := a.InitStorage(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}
	if err := a.InitServices(); err != nil {
		return err
	}
	return a.InitHandlers()
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok","version":"` + a.config.Version + `"}`))
}

// gracefulShutdownMiddleware tracks in-flight requests and rejects new ones
// once shutdown has begun.
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.shuttingDown.Load() {
			w.Header().Set("Connection", "close")
			http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.inFlight.Add(1)
		defer a.inFlight.Done()
		next.ServeHTTP(w, r)
	})
}

// Start starts the HTTP server and blocks until it stops.
func (a *App) Start() error {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	handler = middleware.CORSMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).WithField("version", a.config.Version).Info("Server starting")

	a.server = &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return a.server.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the server and database.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown")
	a.shuttingDown.Store(true)

	drained := make(chan struct{})
	go func() {
		a.inFlight.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-ctx.Done():
		a.logger.Warn("Shutdown deadline reached with requests still in flight")
	}

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	a.logger.Info("Shutdown complete")
	return nil
}

// Handler exposes the assembled mux, used by tests.
func (a *App) Handler() http.Handler {
	return a.mux
}
