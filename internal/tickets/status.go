package tickets

import "github.com/vantage-intel/vantage/internal/shared"

// Status is a ticket lifecycle state.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusPending    Status = "pending"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Priority is a ticket urgency level.
type Priority string

// Priorities in ascending order.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityOrder = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Category buckets a ticket for routing.
type Category string

const (
	CategoryHardware Category = "hardware"
	CategorySoftware Category = "software"
	CategoryNetwork  Category = "network"
	CategorySecurity Category = "security"
	CategoryAccess   Category = "access"
	CategoryOther    Category = "other"
)

var categories = map[Category]struct{}{
	CategoryHardware: {},
	CategorySoftware: {},
	CategoryNetwork:  {},
	CategorySecurity: {},
	CategoryAccess:   {},
	CategoryOther:    {},
}

// statusTransitions is the closed transition table for tickets. pending is
// reachable only from in_progress: a ticket waits on a requester, not on
// triage.
var statusTransitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusClosed},
	StatusInProgress: {StatusPending, StatusResolved, StatusOpen},
	StatusPending:    {StatusInProgress, StatusResolved, StatusClosed},
	StatusResolved:   {StatusClosed, StatusOpen},
	StatusClosed:     {StatusOpen},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo consults the transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ApplyTransition returns the new status or an InvalidTransitionError.
func (s Status) ApplyTransition(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, shared.NewInvalidTransitionError("ticket", string(s), string(target))
	}
	return target, nil
}

// Active reports whether the ticket still counts against its SLA clock.
func (s Status) Active() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusPending:
		return true
	}
	return false
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	for _, v := range priorityOrder {
		if v == p {
			return true
		}
	}
	return false
}

// SLAHours returns the response window for the priority. Unknown priorities
// get the widest window rather than an impossible one.
func (p Priority) SLAHours() int {
	switch p {
	case PriorityUrgent:
		return 2
	case PriorityHigh:
		return 8
	case PriorityMedium:
		return 24
	default:
		return 72
	}
}

// Raise moves priority one step up; a no-op at urgent.
func (p Priority) Raise() Priority {
	for i, v := range priorityOrder {
		if v == p && i < len(priorityOrder)-1 {
			return priorityOrder[i+1]
		}
	}
	return p
}

// Lower moves priority one step down; a no-op at low.
func (p Priority) Lower() Priority {
	for i, v := range priorityOrder {
		if v == p && i > 0 {
			return priorityOrder[i-1]
		}
	}
	return p
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}
