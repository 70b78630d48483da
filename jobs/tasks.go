package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTicketSLAScan is the task type for the periodic SLA sweep.
	TaskTicketSLAScan = "tickets:sla_scan"
	// SLAScanCronSpec runs the sweep every 15 minutes.
	SLAScanCronSpec = "*/15 * * * *"
)

// SLAScanPayload configures a single SLA sweep.
type SLAScanPayload struct {
	// DryRun logs breaches without publishing the gauge.
	DryRun bool `json:"dry_run,omitempty"`
}

// NewSLAScanTask constructs an Asynq task.
func NewSLAScanTask(payload SLAScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTicketSLAScan, data), nil
}

// EnqueueSLAScan enqueues an on-demand SLA sweep.
func (c *Client) EnqueueSLAScan(ctx context.Context, payload SLAScanPayload) (*asynq.TaskInfo, error) {
	task, err := NewSLAScanTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}
