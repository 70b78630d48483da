package tickets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vantage-intel/vantage/internal/observability"
	"github.com/vantage-intel/vantage/internal/shared"
)

// Repository defines the record store contract for tickets.
type Repository interface {
	FindByID(ctx context.Context, id int64) (Ticket, error)
	List(ctx context.Context, req ListTicketsRequest) ([]Ticket, int, error)
	ListActive(ctx context.Context) ([]Ticket, error)
	Insert(ctx context.Context, t Ticket) (int64, error)
	Update(ctx context.Context, t Ticket) error
	Count(ctx context.Context) (int, error)
}

// Service holds ticket business rules.
type Service struct {
	repo    Repository
	audit   *shared.AuditLogger
	log     *slog.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, audit *shared.AuditLogger, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{repo: repo, audit: audit, log: logger, metrics: metrics, now: time.Now}
}

// Create validates and persists a new ticket. Priority defaults to medium.
func (s *Service) Create(ctx context.Context, req CreateTicketRequest, actorID int64) (Ticket, error) {
	t := Ticket{
		Title:       req.Title,
		Description: req.Description,
		Category:    Category(req.Category),
		Priority:    PriorityMedium,
		Status:      StatusOpen,
		Requester:   req.Requester,
	}
	if req.Priority != "" {
		t.Priority = Priority(req.Priority)
	}
	if err := t.Validate(); err != nil {
		return Ticket{}, err
	}

	id, err := s.repo.Insert(ctx, t)
	if err != nil {
		return Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	t.ID = id

	s.record(ctx, actorID, "ticket.create", id, map[string]any{"priority": t.Priority, "category": t.Category})
	return t, nil
}

// Get fetches a ticket by ID.
func (s *Service) Get(ctx context.Context, id int64) (Ticket, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of tickets with the total count.
func (s *Service) List(ctx context.Context, req ListTicketsRequest) ([]Ticket, int, error) {
	return s.repo.List(ctx, req)
}

// Update applies partial field changes, re-validating before persisting.
func (s *Service) Update(ctx context.Context, id int64, req UpdateTicketRequest, actorID int64) (Ticket, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Ticket{}, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Category != nil {
		t.Category = Category(*req.Category)
	}
	if req.Priority != nil {
		t.Priority = Priority(*req.Priority)
	}
	if err := t.Validate(); err != nil {
		return Ticket{}, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return Ticket{}, fmt.Errorf("update ticket: %w", err)
	}
	s.record(ctx, actorID, "ticket.update", id, nil)
	return t, nil
}

// Transition moves the ticket status through the state machine.
func (s *Service) Transition(ctx context.Context, id int64, target Status, actorID int64) (Ticket, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Ticket{}, err
	}

	from := t.Status
	t, err = t.WithStatus(target)
	s.metrics.ObserveTransition("ticket", err == nil)
	if err != nil {
		return Ticket{}, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return Ticket{}, fmt.Errorf("transition ticket: %w", err)
	}
	s.record(ctx, actorID, "ticket.transition", id, map[string]any{"from": from, "to": target})
	return t, nil
}

// Assign hands the ticket to an agent; an open ticket moves to in_progress
// as a side effect.
func (s *Service) Assign(ctx context.Context, id int64, agent string, actorID int64) (Ticket, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Ticket{}, err
	}

	t = t.Assign(agent)
	if err := s.repo.Update(ctx, t); err != nil {
		return Ticket{}, fmt.Errorf("assign ticket: %w", err)
	}
	s.record(ctx, actorID, "ticket.assign", id, map[string]any{"assigned_to": agent})
	return t, nil
}

// RaisePriority bumps priority one step; no-op at urgent.
func (s *Service) RaisePriority(ctx context.Context, id int64, actorID int64) (Ticket, error) {
	return s.shiftPriority(ctx, id, actorID, true)
}

// LowerPriority drops priority one step; no-op at low.
func (s *Service) LowerPriority(ctx context.Context, id int64, actorID int64) (Ticket, error) {
	return s.shiftPriority(ctx, id, actorID, false)
}

func (s *Service) shiftPriority(ctx context.Context, id, actorID int64, up bool) (Ticket, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Ticket{}, err
	}

	from := t.Priority
	if up {
		t = t.RaisePriority()
	} else {
		t = t.LowerPriority()
	}
	if t.Priority == from {
		return t, nil
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return Ticket{}, fmt.Errorf("reprioritize ticket: %w", err)
	}
	s.record(ctx, actorID, "ticket.priority", id, map[string]any{"from": from, "to": t.Priority})
	return t, nil
}

// BreachedSLAs returns the active tickets whose response window has lapsed.
// Used by both the dashboard endpoint and the periodic scan job.
func (s *Service) BreachedSLAs(ctx context.Context) ([]Ticket, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan ticket slas: %w", err)
	}
	now := s.now()
	var breached []Ticket
	for _, t := range active {
		if t.IsSLABreached(now) {
			breached = append(breached, t)
		}
	}
	return breached, nil
}

func (s *Service) record(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "ticket",
		EntityID: fmt.Sprintf("%d", entityID),
		Meta:     meta,
	})
	if err != nil && s.log != nil {
		s.log.Warn("audit record failed", "action", action, "error", err)
	}
}
