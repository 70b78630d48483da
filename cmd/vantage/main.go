package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/vantage-intel/vantage/internal/app"
	"github.com/vantage-intel/vantage/internal/auth"
	"github.com/vantage-intel/vantage/internal/chatbot"
	"github.com/vantage-intel/vantage/internal/credential"
	"github.com/vantage-intel/vantage/internal/datasets"
	"github.com/vantage-intel/vantage/internal/incidents"
	"github.com/vantage-intel/vantage/internal/observability"
	"github.com/vantage-intel/vantage/internal/platform/db"
	"github.com/vantage-intel/vantage/internal/policy"
	"github.com/vantage-intel/vantage/internal/shared"
	"github.com/vantage-intel/vantage/internal/tickets"
	"github.com/vantage-intel/vantage/internal/users"
	"github.com/vantage-intel/vantage/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "vantage_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	auditLogger := shared.NewAuditLogger(dbpool)
	roles := policy.Middleware{Logger: logger}
	engine := credential.NewEngine(cfg.BcryptCost)
	metrics := observability.NewMetrics()

	userRepo := users.NewRepository(dbpool)
	userService := users.NewService(userRepo, engine, auditLogger, logger)
	userHandler := users.NewHandler(logger, userService, roles)

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(userService, authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager, metrics)

	incidentRepo := incidents.NewRepository(dbpool)
	incidentService := incidents.NewService(incidentRepo, auditLogger, logger, metrics)
	incidentHandler := incidents.NewHandler(logger, incidentService, roles)

	ticketRepo := tickets.NewRepository(dbpool)
	ticketService := tickets.NewService(ticketRepo, auditLogger, logger, metrics)
	ticketHandler := tickets.NewHandler(logger, ticketService, roles)

	datasetRepo := datasets.NewRepository(dbpool)
	datasetService := datasets.NewService(datasetRepo, auditLogger, logger)
	datasetHandler := datasets.NewHandler(logger, datasetService, roles)

	statsStore := chatbot.NewStore(cfg.DataDir)
	responder := chatbot.NewResponder(statsStore)
	chatbotHandler := chatbot.NewHandler(logger, responder, roles)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, jobsClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		SessionManager:  sessionManager,
		CSRFManager:     csrfManager,
		AuthHandler:     authHandler,
		UsersHandler:    userHandler,
		IncidentHandler: incidentHandler,
		TicketHandler:   ticketHandler,
		DatasetHandler:  datasetHandler,
		ChatbotHandler:  chatbotHandler,
		JobsHandler:     jobsHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
