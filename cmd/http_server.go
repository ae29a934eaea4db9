package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/audit"
	auditPostgres "github.com/frahmantamala/compliance-management/internal/audit/postgres"
	"github.com/frahmantamala/compliance-management/internal/auth"
	authPostgres "github.com/frahmantamala/compliance-management/internal/auth/postgres"
	"github.com/frahmantamala/compliance-management/internal/core/events"
	"github.com/frahmantamala/compliance-management/internal/department"
	departmentPostgres "github.com/frahmantamala/compliance-management/internal/department/postgres"
	"github.com/frahmantamala/compliance-management/internal/importer"
	"github.com/frahmantamala/compliance-management/internal/portal"
	"github.com/frahmantamala/compliance-management/internal/report"
	"github.com/frahmantamala/compliance-management/internal/staff"
	staffPostgres "github.com/frahmantamala/compliance-management/internal/staff/postgres"
	"github.com/frahmantamala/compliance-management/internal/transport"
	"github.com/frahmantamala/compliance-management/internal/transport/rest"
	"github.com/frahmantamala/compliance-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitFromConfig(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	router := chi.NewRouter()
	base := transport.NewBaseHandler(log)

	bus := events.NewBus(log)

	auditRepo := auditPostgres.NewAuditRepository(gormDB)
	auditService := audit.NewService(auditRepo, log)
	auditService.RegisterRecorder(bus)

	staffRepo := staffPostgres.NewStaffRepository(gormDB)
	staffService := staff.NewService(staffRepo, bus, log)

	reportService := report.NewService(staffRepo, bus, log)
	importService := importer.NewService(staffRepo, bus, log)

	departmentRepo := departmentPostgres.NewMetadataRepository(gormDB)
	departmentService := department.NewService(departmentRepo, staffRepo, staffRepo, bus, log)

	portalService := portal.NewService(staffRepo, bus, log)

	authRepo := authPostgres.NewRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(cfg.Security)
	authService := auth.NewService(authRepo, tokenGen)
	rbac := auth.NewRBACAuthorization(auth.NewPermissionChecker(), log)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(base, authService),
		Staff:      staff.NewHandler(base, staffService),
		Report:     report.NewHandler(base, reportService),
		Importer:   importer.NewHandler(base, importService, cfg.Import.MaxUploadBytes),
		Department: department.NewHandler(base, departmentService),
		Audit:      audit.NewHandler(base, auditService),
		Portal:     portal.NewHandler(base, portalService),
	}

	rest.RegisterAllRoutes(router, db.DB, handlers, rbac, cfg.Server.AllowedOrigins, log)

	return &Dependencies{
		Config: cfg,
		DB:     db,
		Router: router,
		Logger: log,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
