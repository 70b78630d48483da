package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/vantage-intel/vantage/internal/observability"
	"github.com/vantage-intel/vantage/internal/tickets"
)

// SLAScanJob sweeps active tickets and reports the ones past their response
// window.
type SLAScanJob struct {
	Service *tickets.Service
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// NewSLAScanJob initialises the SLA sweep handler.
func NewSLAScanJob(service *tickets.Service, logger *slog.Logger, metrics *observability.Metrics) *SLAScanJob {
	return &SLAScanJob{Service: service, Logger: logger, Metrics: metrics}
}

// Handle executes one sweep.
func (j *SLAScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("sla scan: handler not configured")
	}
	var payload SLAScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := time.Now()
	logger := j.logger()
	logger.Info("starting sla scan")

	breached, err := j.Service.BreachedSLAs(ctx)
	if err != nil {
		logger.Error("sla scan failed", slog.Any("error", err))
		return err
	}

	for _, tk := range breached {
		logger.Warn("ticket past sla",
			slog.Int64("ticket_id", tk.ID),
			slog.String("priority", string(tk.Priority)),
			slog.String("status", string(tk.Status)),
			slog.Time("created_at", tk.CreatedAt),
		)
	}
	if !payload.DryRun {
		j.Metrics.SetSLABreaches(len(breached))
	}

	logger.Info("completed sla scan",
		slog.Int("breached", len(breached)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *SLAScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTicketSLAScan))
	}
	return slog.Default().With(slog.String("job", TaskTicketSLAScan))
}
