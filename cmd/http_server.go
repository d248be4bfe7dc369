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

	"github.com/mercadinho/gestao/internal"
	"github.com/mercadinho/gestao/internal/assistant"
	"github.com/mercadinho/gestao/internal/auth"
	authstore "github.com/mercadinho/gestao/internal/auth/postgres"
	"github.com/mercadinho/gestao/internal/category"
	categorystore "github.com/mercadinho/gestao/internal/category/postgres"
	"github.com/mercadinho/gestao/internal/client"
	clientstore "github.com/mercadinho/gestao/internal/client/postgres"
	"github.com/mercadinho/gestao/internal/core/events"
	"github.com/mercadinho/gestao/internal/employee"
	employeestore "github.com/mercadinho/gestao/internal/employee/postgres"
	"github.com/mercadinho/gestao/internal/mail"
	"github.com/mercadinho/gestao/internal/product"
	productstore "github.com/mercadinho/gestao/internal/product/postgres"
	"github.com/mercadinho/gestao/internal/sale"
	salestore "github.com/mercadinho/gestao/internal/sale/postgres"
	"github.com/mercadinho/gestao/internal/session"
	"github.com/mercadinho/gestao/internal/supplier"
	supplierstore "github.com/mercadinho/gestao/internal/supplier/postgres"
	"github.com/mercadinho/gestao/internal/transport/rest"
	"github.com/mercadinho/gestao/internal/web"
	"github.com/mercadinho/gestao/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server that serves both the HTML pages and the JSON API`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Sessions *session.Manager
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Sessions, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

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
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	sessions := session.NewManager(config.Security.SessionTTL)

	pages, err := web.NewPages(sessions, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}

	bus := events.NewEventBus(lg)

	hasher := auth.NewPasswordHasher(
		config.Security.Argon2Memory,
		config.Security.Argon2Iterations,
		config.Security.Argon2Threads,
	)
	tokens := auth.NewTokenService(config.Security.SessionSecret)
	mailer := mail.NewSMTPMailer(config.Mail, lg)

	authService := auth.NewService(
		authstore.NewUserRepository(gormDB),
		hasher,
		tokens,
		mailer,
		config.Server.BaseURL,
		config.Security.ResetTokenMaxAge,
		lg,
	)

	productRepo := productstore.NewProductRepository(gormDB)
	productService := product.NewService(productRepo, lg)
	productService.RegisterEventHandlers(bus)

	categoryService := category.NewService(categorystore.NewCategoryRepository(gormDB), lg)
	clientService := client.NewService(clientstore.NewClientRepository(gormDB), lg)
	supplierService := supplier.NewService(supplierstore.NewSupplierRepository(gormDB), lg)
	employeeService := employee.NewService(employeestore.NewEmployeeRepository(gormDB), lg)
	saleService := sale.NewService(salestore.NewSaleRepository(gormDB), productRepo, bus, lg)

	gemini := assistant.NewGeminiClient(config.Assistant.APIKey, config.Assistant.Model, config.Assistant.Timeout)
	assistantService := assistant.NewService(gemini, config.Assistant.APIKey != "", lg)

	handlers := rest.Handlers{
		Auth:      auth.NewHandler(authService, sessions, pages),
		Product:   product.NewHandler(productService),
		Category:  category.NewHandler(categoryService),
		Client:    client.NewHandler(clientService),
		Supplier:  supplier.NewHandler(supplierService),
		Employee:  employee.NewHandler(employeeService),
		Sale:      sale.NewHandler(saleService),
		Assistant: assistant.NewHandler(assistantService),
		Pages:     pages,
	}

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   chi.NewRouter(),
		Sessions: sessions,
		Handlers: handlers,
		Logger:   lg,
	}, nil
}

// initDB opens the pgx-backed connection pool.
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

// initGorm layers the ORM over the already-open pool so both share one set
// of connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
}
