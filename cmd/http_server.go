package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/bakery-hub/api"
	"github.com/frahmantamala/bakery-hub/internal"
	"github.com/frahmantamala/bakery-hub/internal/audit"
	auditPostgres "github.com/frahmantamala/bakery-hub/internal/audit/postgres"
	"github.com/frahmantamala/bakery-hub/internal/auth"
	authPostgres "github.com/frahmantamala/bakery-hub/internal/auth/postgres"
	"github.com/frahmantamala/bakery-hub/internal/category"
	categoryPostgres "github.com/frahmantamala/bakery-hub/internal/category/postgres"
	"github.com/frahmantamala/bakery-hub/internal/core/events"
	"github.com/frahmantamala/bakery-hub/internal/expense"
	expensePostgres "github.com/frahmantamala/bakery-hub/internal/expense/postgres"
	"github.com/frahmantamala/bakery-hub/internal/inventory"
	inventoryPostgres "github.com/frahmantamala/bakery-hub/internal/inventory/postgres"
	"github.com/frahmantamala/bakery-hub/internal/summary"
	summaryPostgres "github.com/frahmantamala/bakery-hub/internal/summary/postgres"
	"github.com/frahmantamala/bakery-hub/internal/supplier"
	supplierPostgres "github.com/frahmantamala/bakery-hub/internal/supplier/postgres"
	"github.com/frahmantamala/bakery-hub/internal/transport"
	"github.com/frahmantamala/bakery-hub/internal/transport/middleware"
	"github.com/frahmantamala/bakery-hub/internal/transport/rest"
	"github.com/frahmantamala/bakery-hub/internal/user"
	userPostgres "github.com/frahmantamala/bakery-hub/internal/user/postgres"
	"github.com/frahmantamala/bakery-hub/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	EventBus *events.EventBus
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() error {
	deps, err := initializeDependencies()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.DB.Close()

	if err := setupRoutes(deps); err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
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
		deps.Logger.Info("Starting HTTP server", "address", addr, "timezone", deps.Config.App.Timezone)
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.EventBus.Drain(ctx); err != nil {
			deps.Logger.Warn("Event handlers still running at shutdown", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	deps.Logger.Info("Server stopped")
	return nil
}

func setupRoutes(deps *Dependencies) error {
	loc, err := deps.Config.App.Location()
	if err != nil {
		return err
	}

	if _, err := api.Load(context.Background()); err != nil {
		return err
	}

	lg := deps.Logger
	base := transport.NewBaseHandler(lg)

	// auth
	validator := auth.NewJWTTokenGenerator(deps.Config.Security.JWTSecret, deps.Config.Security.AccessTokenDuration)
	authService := auth.NewService(authPostgres.NewUserRepository(deps.GormDB), validator)
	guard := auth.NewGuard(authPostgres.NewMembershipRepository(deps.DB))

	// audit trail subscribes before anything publishes
	recorder := audit.NewRecorder(auditPostgres.NewAuditRepository(deps.GormDB), lg)
	recorder.Register(deps.EventBus)
	audit.NewDecisionLog(lg).Register(deps.EventBus)

	summaryRepo := summaryPostgres.NewSummaryRepository(deps.GormDB)
	expenseService := expense.NewService(
		expensePostgres.NewExpenseRepository(deps.GormDB, summaryRepo),
		guard,
		deps.EventBus,
		recorder,
		lg,
		expense.WithLocation(loc),
	)

	handlers := rest.Handlers{
		Auth:      middleware.NewAuthenticator(base, authService),
		User:      user.NewHandler(base, user.NewService(userPostgres.NewBakeryRepository(deps.DB), lg)),
		Expense:   expense.NewHandler(base, expenseService),
		Category:  category.NewHandler(base, category.NewService(categoryPostgres.NewCategoryRepository(deps.GormDB), lg)),
		Supplier:  supplier.NewHandler(base, supplier.NewService(supplierPostgres.NewSupplierRepository(deps.GormDB), lg)),
		Inventory: inventory.NewHandler(base, inventory.NewService(inventoryPostgres.NewInventoryRepository(deps.GormDB), guard, lg)),
		Summary:   summary.NewHandler(base, summary.NewService(summaryRepo, guard, loc, lg)),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB, handlers, rest.Options{
		AllowedOrigins: deps.Config.Server.AllowedOrigins,
		OpenAPIDoc:     api.Document,
	}, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(logger.Options{Level: config.Logging.Level, Format: config.Logging.Format})
	lg := logger.LoggerWrapper()

	sqlxDB, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config:   config,
		DB:       sqlxDB,
		GormDB:   gormDB,
		EventBus: events.NewEventBus(lg),
		Router:   chi.NewRouter(),
		Logger:   lg,
	}, nil
}

// initDB opens one pgx pool and shares it between sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	const driver = "pgx"

	sqlxDB, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlxDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlxDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlxDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlxDB.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		_ = sqlxDB.Close()
		return nil, nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	return sqlxDB, gormDB, nil
}
