package incidents

import "github.com/vantage-intel/vantage/internal/shared"

// Status is an incident lifecycle state.
type Status string

const (
	StatusOpen          Status = "open"
	StatusInvestigating Status = "investigating"
	StatusResolved      Status = "resolved"
	StatusClosed        Status = "closed"
)

// Severity is an incident impact level.
type Severity string

// Severities in ascending order.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityOrder = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// statusTransitions is the closed transition table. A status maps to the
// complete set of states it may move to.
var statusTransitions = map[Status][]Status{
	StatusOpen:          {StatusInvestigating, StatusClosed},
	StatusInvestigating: {StatusResolved, StatusOpen, StatusClosed},
	StatusResolved:      {StatusClosed, StatusOpen},
	StatusClosed:        {StatusOpen},
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

// ApplyTransition returns the new status or an InvalidTransitionError. It
// never silently no-ops: requesting the current status is a rejection
// unless the table allows the self-loop (it does not).
func (s Status) ApplyTransition(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, shared.NewInvalidTransitionError("incident", string(s), string(target))
	}
	return target, nil
}

// Valid reports whether sv is a known severity.
func (sv Severity) Valid() bool {
	for _, s := range severityOrder {
		if s == sv {
			return true
		}
	}
	return false
}

// Escalate moves severity one step up; a no-op at critical.
func (sv Severity) Escalate() Severity {
	for i, s := range severityOrder {
		if s == sv && i < len(severityOrder)-1 {
			return severityOrder[i+1]
		}
	}
	return sv
}

// Deescalate moves severity one step down; a no-op at low.
func (sv Severity) Deescalate() Severity {
	for i, s := range severityOrder {
		if s == sv && i > 0 {
			return severityOrder[i-1]
		}
	}
	return sv
}
