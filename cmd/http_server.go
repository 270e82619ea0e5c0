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

	"github.com/ErdhyErnando/moneta/internal"
	"github.com/ErdhyErnando/moneta/internal/audit"
	"github.com/ErdhyErnando/moneta/internal/auth"
	authPostgres "github.com/ErdhyErnando/moneta/internal/auth/postgres"
	"github.com/ErdhyErnando/moneta/internal/category"
	categoryPostgres "github.com/ErdhyErnando/moneta/internal/category/postgres"
	"github.com/ErdhyErnando/moneta/internal/core/events"
	"github.com/ErdhyErnando/moneta/internal/dashboard"
	dashboardPostgres "github.com/ErdhyErnando/moneta/internal/dashboard/postgres"
	"github.com/ErdhyErnando/moneta/internal/record"
	recordPostgres "github.com/ErdhyErnando/moneta/internal/record/postgres"
	"github.com/ErdhyErnando/moneta/internal/transport/rest"
	"github.com/ErdhyErnando/moneta/pkg/logger"

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
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
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
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	bus := events.NewEventBus(log)
	audit.NewRecorder(log).Register(bus)

	authRepo := authPostgres.NewAuthRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(config.Security.AccessTokenSecret, config.Security.AccessTokenDuration)
	authService := auth.NewService(authRepo, tokenGen, config.Security.RefreshTokenDuration, log)
	authHandler := auth.NewHandler(authService)

	categoryRepo := categoryPostgres.NewCategoryRepository(gormDB)
	categoryService := category.NewService(categoryRepo, log)
	categoryHandler := category.NewHandler(categoryService)

	recordRepo := recordPostgres.NewRecordRepository(gormDB)
	recordService := record.NewService(recordRepo, categoryService, bus, log)

	dashboardRepo := dashboardPostgres.NewDashboardRepository(gormDB)
	dashboardService := dashboard.NewService(dashboardRepo, log)

	return &Dependencies{
		Config: config,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
		Logger: log,
		Handlers: rest.Handlers{
			Auth:            authHandler,
			Category:        categoryHandler,
			Income:          record.NewHandler(record.KindIncome, recordService),
			Expense:         record.NewHandler(record.KindExpense, recordService),
			StartingBalance: record.NewHandler(record.KindStartingBalance, recordService),
			Dashboard:       dashboard.NewHandler(dashboardService),
		},
	}, nil
}

// initDB opens the shared connection pool through the pgx stdlib driver.
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
