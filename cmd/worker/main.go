package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/vantage-intel/vantage/internal/app"
	"github.com/vantage-intel/vantage/internal/observability"
	"github.com/vantage-intel/vantage/internal/platform/db"
	"github.com/vantage-intel/vantage/internal/shared"
	"github.com/vantage-intel/vantage/internal/tickets"
	"github.com/vantage-intel/vantage/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(pool)

	ticketRepo := tickets.NewRepository(pool)
	ticketService := tickets.NewService(ticketRepo, auditLogger, logger, metrics)
	slaScanJob := jobs.NewSLAScanJob(ticketService, logger, metrics)

	slaScanTask, err := jobs.NewSLAScanTask(jobs.SLAScanPayload{})
	if err != nil {
		logger.Error("build sla scan task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTicketSLAScan, Handler: slaScanJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: jobs.SLAScanCronSpec, Task: slaScanTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
