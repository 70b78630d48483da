package incidents

import (
	"strings"
	"time"

	"github.com/vantage-intel/vantage/internal/shared"
)

// dateLayout is the calendar date format used for incident dates, matching
// the stored column format.
const dateLayout = "2006-01-02"

// Incident is a security incident record. Mutations go through the methods
// below, which validate on a copy and return either the mutated copy or a
// rejection; a partially applied invalid incident is never observable.
type Incident struct {
	shared.RecordHeader
	Title        string   `json:"title" db:"title"`
	Description  string   `json:"description" db:"description"`
	IncidentDate string   `json:"incident_date" db:"incident_date"`
	Severity     Severity `json:"severity" db:"severity"`
	Status       Status   `json:"status" db:"status"`
	AssignedTo   string   `json:"assigned_to,omitempty" db:"assigned_to"`
	ReportedBy   string   `json:"reported_by,omitempty" db:"reported_by"`
}

// Validate checks fields in a fixed order and reports only the first
// failure: title, description, date, severity, status.
func (i Incident) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return shared.NewValidationError("title", "required", "title cannot be empty")
	}
	if len(i.Title) < 5 {
		return shared.NewValidationError("title", "min_length", "title must be at least 5 characters long")
	}
	if strings.TrimSpace(i.Description) == "" {
		return shared.NewValidationError("description", "required", "description cannot be empty")
	}
	if _, err := time.Parse(dateLayout, i.IncidentDate); err != nil {
		return shared.NewValidationError("incident_date", "format", "invalid date format, use YYYY-MM-DD")
	}
	if !i.Severity.Valid() {
		return shared.NewValidationError("severity", "enum", "severity must be one of: low, medium, high, critical")
	}
	if !i.Status.Valid() {
		return shared.NewValidationError("status", "enum", "status must be one of: open, investigating, resolved, closed")
	}
	return nil
}

// WithStatus returns a copy with the status transitioned, or a rejection.
func (i Incident) WithStatus(target Status) (Incident, error) {
	next, err := i.Status.ApplyTransition(target)
	if err != nil {
		return i, err
	}
	i.Status = next
	return i, nil
}

// Assign sets the handler. Assigning while open moves the incident to
// investigating; in any other status the status is left unchanged.
func (i Incident) Assign(analyst string) Incident {
	i.AssignedTo = analyst
	if i.Status == StatusOpen {
		i.Status = StatusInvestigating
	}
	return i
}

// Escalate raises severity one step.
func (i Incident) Escalate() Incident {
	i.Severity = i.Severity.Escalate()
	return i
}

// Deescalate lowers severity one step.
func (i Incident) Deescalate() Incident {
	i.Severity = i.Severity.Deescalate()
	return i
}

// IsCritical reports critical severity.
func (i Incident) IsCritical() bool {
	return i.Severity == SeverityCritical
}

// IsOpen reports whether the incident is still being worked.
func (i Incident) IsOpen() bool {
	return i.Status == StatusOpen || i.Status == StatusInvestigating
}
