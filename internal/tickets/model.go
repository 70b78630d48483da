package tickets

import (
	"strings"
	"time"

	"github.com/vantage-intel/vantage/internal/shared"
)

// Ticket is an IT support request. Like incidents, mutations operate on a
// copy; the caller only sees either the full new state or a rejection.
type Ticket struct {
	shared.RecordHeader
	Title       string   `json:"title" db:"title"`
	Description string   `json:"description" db:"description"`
	Category    Category `json:"category" db:"category"`
	Priority    Priority `json:"priority" db:"priority"`
	Status      Status   `json:"status" db:"status"`
	Requester   string   `json:"requester" db:"requester"`
	AssignedTo  string   `json:"assigned_to,omitempty" db:"assigned_to"`
}

// Validate checks fields in a fixed order and reports only the first
// failure: title, description, priority, status, category, requester.
func (t Ticket) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return shared.NewValidationError("title", "required", "title cannot be empty")
	}
	if len(t.Title) < 5 {
		return shared.NewValidationError("title", "min_length", "title must be at least 5 characters long")
	}
	if strings.TrimSpace(t.Description) == "" {
		return shared.NewValidationError("description", "required", "description cannot be empty")
	}
	if !t.Priority.Valid() {
		return shared.NewValidationError("priority", "enum", "priority must be one of: low, medium, high, urgent")
	}
	if !t.Status.Valid() {
		return shared.NewValidationError("status", "enum", "status must be one of: open, in_progress, pending, resolved, closed")
	}
	if !t.Category.Valid() {
		return shared.NewValidationError("category", "enum", "category must be one of: hardware, software, network, security, access, other")
	}
	if strings.TrimSpace(t.Requester) == "" {
		return shared.NewValidationError("requester", "required", "requester cannot be empty")
	}
	return nil
}

// WithStatus returns a copy with the status transitioned, or a rejection.
func (t Ticket) WithStatus(target Status) (Ticket, error) {
	next, err := t.Status.ApplyTransition(target)
	if err != nil {
		return t, err
	}
	t.Status = next
	return t, nil
}

// Assign sets the handler. Assigning an open ticket starts work on it; in
// any other status the status is left unchanged.
func (t Ticket) Assign(agent string) Ticket {
	t.AssignedTo = agent
	if t.Status == StatusOpen {
		t.Status = StatusInProgress
	}
	return t
}

// RaisePriority bumps priority one step.
func (t Ticket) RaisePriority() Ticket {
	t.Priority = t.Priority.Raise()
	return t
}

// LowerPriority drops priority one step.
func (t Ticket) LowerPriority() Ticket {
	t.Priority = t.Priority.Lower()
	return t
}

// IsSLABreached reports whether the ticket has outlived its response window
// at the given instant. Only active statuses breach; a ticket without a
// creation timestamp never breaches rather than alarming on bad data.
func (t Ticket) IsSLABreached(now time.Time) bool {
	if t.CreatedAt.IsZero() {
		return false
	}
	if !t.Status.Active() {
		return false
	}
	deadline := t.CreatedAt.Add(time.Duration(t.Priority.SLAHours()) * time.Hour)
	return now.After(deadline)
}
