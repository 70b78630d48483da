package incidents

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vantage-intel/vantage/internal/observability"
	"github.com/vantage-intel/vantage/internal/shared"
)

// Repository defines the record store contract for incidents.
type Repository interface {
	FindByID(ctx context.Context, id int64) (Incident, error)
	List(ctx context.Context, req ListIncidentsRequest) ([]Incident, int, error)
	Insert(ctx context.Context, inc Incident) (int64, error)
	Update(ctx context.Context, inc Incident) error
	Count(ctx context.Context) (int, error)
}

// Service holds incident business rules. Entities are validated before
// every insert or update; the repository only ever sees valid snapshots.
type Service struct {
	repo    Repository
	audit   *shared.AuditLogger
	log     *slog.Logger
	metrics *observability.Metrics
}

// NewService constructs a Service.
func NewService(repo Repository, audit *shared.AuditLogger, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{repo: repo, audit: audit, log: logger, metrics: metrics}
}

// Create validates and persists a new incident.
func (s *Service) Create(ctx context.Context, req CreateIncidentRequest, actorID int64) (Incident, error) {
	inc := Incident{
		Title:        req.Title,
		Description:  req.Description,
		IncidentDate: req.IncidentDate,
		Severity:     SeverityMedium,
		Status:       StatusOpen,
		ReportedBy:   req.ReportedBy,
	}
	if req.Severity != "" {
		inc.Severity = Severity(req.Severity)
	}
	if err := inc.Validate(); err != nil {
		return Incident{}, err
	}

	id, err := s.repo.Insert(ctx, inc)
	if err != nil {
		return Incident{}, fmt.Errorf("create incident: %w", err)
	}
	inc.ID = id

	s.record(ctx, actorID, "incident.create", id, map[string]any{"severity": inc.Severity})
	return inc, nil
}

// Get fetches an incident by ID.
func (s *Service) Get(ctx context.Context, id int64) (Incident, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of incidents with the total count.
func (s *Service) List(ctx context.Context, req ListIncidentsRequest) ([]Incident, int, error) {
	return s.repo.List(ctx, req)
}

// Update applies partial field changes, re-validating the whole entity
// before persisting.
func (s *Service) Update(ctx context.Context, id int64, req UpdateIncidentRequest, actorID int64) (Incident, error) {
	inc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Incident{}, err
	}

	if req.Title != nil {
		inc.Title = *req.Title
	}
	if req.Description != nil {
		inc.Description = *req.Description
	}
	if req.Severity != nil {
		inc.Severity = Severity(*req.Severity)
	}
	if err := inc.Validate(); err != nil {
		return Incident{}, err
	}

	if err := s.repo.Update(ctx, inc); err != nil {
		return Incident{}, fmt.Errorf("update incident: %w", err)
	}
	s.record(ctx, actorID, "incident.update", id, nil)
	return inc, nil
}

// Transition moves the incident status through the state machine. Invalid
// targets are rejected with an InvalidTransitionError, never ignored.
func (s *Service) Transition(ctx context.Context, id int64, target Status, actorID int64) (Incident, error) {
	inc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Incident{}, err
	}

	from := inc.Status
	inc, err = inc.WithStatus(target)
	s.metrics.ObserveTransition("incident", err == nil)
	if err != nil {
		return Incident{}, err
	}

	if err := s.repo.Update(ctx, inc); err != nil {
		return Incident{}, fmt.Errorf("transition incident: %w", err)
	}
	s.record(ctx, actorID, "incident.transition", id, map[string]any{"from": from, "to": target})
	return inc, nil
}

// Assign hands the incident to an analyst; an open incident moves to
// investigating as a side effect.
func (s *Service) Assign(ctx context.Context, id int64, analyst string, actorID int64) (Incident, error) {
	inc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Incident{}, err
	}

	inc = inc.Assign(analyst)
	if err := s.repo.Update(ctx, inc); err != nil {
		return Incident{}, fmt.Errorf("assign incident: %w", err)
	}
	s.record(ctx, actorID, "incident.assign", id, map[string]any{"assigned_to": analyst})
	return inc, nil
}

// Escalate raises severity one step; de-escalation is the inverse. Both are
// no-ops at the boundary.
func (s *Service) Escalate(ctx context.Context, id int64, actorID int64) (Incident, error) {
	return s.shiftSeverity(ctx, id, actorID, true)
}

// Deescalate lowers severity one step.
func (s *Service) Deescalate(ctx context.Context, id int64, actorID int64) (Incident, error) {
	return s.shiftSeverity(ctx, id, actorID, false)
}

func (s *Service) shiftSeverity(ctx context.Context, id, actorID int64, up bool) (Incident, error) {
	inc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Incident{}, err
	}

	from := inc.Severity
	if up {
		inc = inc.Escalate()
	} else {
		inc = inc.Deescalate()
	}
	if inc.Severity == from {
		return inc, nil
	}

	if err := s.repo.Update(ctx, inc); err != nil {
		return Incident{}, fmt.Errorf("escalate incident: %w", err)
	}
	s.record(ctx, actorID, "incident.severity", id, map[string]any{"from": from, "to": inc.Severity})
	return inc, nil
}

func (s *Service) record(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "incident",
		EntityID: fmt.Sprintf("%d", entityID),
		Meta:     meta,
	})
	if err != nil && s.log != nil {
		s.log.Warn("audit record failed", "action", action, "error", err)
	}
}
