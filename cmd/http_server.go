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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rosterguard/roster-guardian/internal"
	"github.com/rosterguard/roster-guardian/internal/auth"
	authPostgres "github.com/rosterguard/roster-guardian/internal/auth/postgres"
	"github.com/rosterguard/roster-guardian/internal/comment"
	commentPostgres "github.com/rosterguard/roster-guardian/internal/comment/postgres"
	"github.com/rosterguard/roster-guardian/internal/core/events"
	"github.com/rosterguard/roster-guardian/internal/issue"
	issuePostgres "github.com/rosterguard/roster-guardian/internal/issue/postgres"
	"github.com/rosterguard/roster-guardian/internal/roster"
	rosterPostgres "github.com/rosterguard/roster-guardian/internal/roster/postgres"
	"github.com/rosterguard/roster-guardian/internal/status"
	statusPostgres "github.com/rosterguard/roster-guardian/internal/status/postgres"
	"github.com/rosterguard/roster-guardian/internal/transport"
	"github.com/rosterguard/roster-guardian/internal/transport/rest"
	"github.com/rosterguard/roster-guardian/internal/user"
	userPostgres "github.com/rosterguard/roster-guardian/internal/user/postgres"
	"github.com/rosterguard/roster-guardian/pkg/logger"
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
	slog.Info("Starting HTTP server", "address", addr)

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
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	bus := events.NewEventBus(lg)
	registerEventLogging(bus, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	baseHandler := transport.NewBaseHandler(lg)

	userService := user.NewService(userPostgres.NewUserRepository(gormDB), config.Security.BCryptCost, lg)
	userHandler := user.NewHandler(baseHandler, userService)

	statusService := status.NewService(statusPostgres.NewStatusRepository(gormDB), lg)
	statusHandler := status.NewHandler(baseHandler, statusService)

	// Idempotent: inserts the canonical statuses only when absent by name.
	if err := statusService.EnsureDefaults(); err != nil {
		return nil, fmt.Errorf("failed to seed status catalog: %w", err)
	}

	issueService := issue.NewService(issuePostgres.NewIssueRepository(gormDB), statusService, bus, lg)
	issueHandler := issue.NewHandler(baseHandler, issueService)

	commentService := comment.NewService(commentPostgres.NewCommentRepository(gormDB), bus, lg)
	commentHandler := comment.NewHandler(baseHandler, commentService)

	rosterService := roster.NewService(rosterPostgres.NewRosterRepository(gormDB), lg)
	rosterHandler := roster.NewHandler(baseHandler, rosterService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, authHandler, userHandler, statusHandler, issueHandler, commentHandler, rosterHandler, lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: router,
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

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the already-open pgx connection so the ORM and the raw
// health checks share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
}

func registerEventLogging(bus *events.EventBus, lg *slog.Logger) {
	logEvent := func(ctx context.Context, event events.Event) error {
		lg.Info("domain event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypeIssueCreated, logEvent)
	bus.Subscribe(events.EventTypeIssueStatusChanged, logEvent)
	bus.Subscribe(events.EventTypeCommentAdded, logEvent)
}
