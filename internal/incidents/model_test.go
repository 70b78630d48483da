package incidents

import (
	"errors"
	"testing"

	"github.com/vantage-intel/vantage/internal/shared"
)

func validIncident() Incident {
	return Incident{
		Title:        "Phishing campaign against finance",
		Description:  "Multiple users received credential harvesting emails.",
		IncidentDate: "2026-03-14",
		Severity:     SeverityMedium,
		Status:       StatusOpen,
	}
}

func TestIncidentValidate(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*Incident)
		wantRule string
	}{
		{"valid", func(*Incident) {}, ""},
		{"empty title", func(i *Incident) { i.Title = "  " }, "required"},
		{"short title", func(i *Incident) { i.Title = "abc" }, "min_length"},
		{"empty description", func(i *Incident) { i.Description = "" }, "required"},
		{"bad date", func(i *Incident) { i.IncidentDate = "14/03/2026" }, "format"},
		{"unknown severity", func(i *Incident) { i.Severity = "catastrophic" }, "enum"},
		{"unknown status", func(i *Incident) { i.Status = "pending" }, "enum"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inc := validIncident()
			tc.mutate(&inc)
			err := inc.Validate()
			if tc.wantRule == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *shared.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Rule != tc.wantRule {
				t.Fatalf("rule = %q, want %q", verr.Rule, tc.wantRule)
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusOpen, StatusInvestigating, true},
		{StatusOpen, StatusClosed, true},
		{StatusOpen, StatusResolved, false},
		{StatusOpen, StatusOpen, false},
		{StatusInvestigating, StatusResolved, true},
		{StatusInvestigating, StatusOpen, true},
		{StatusInvestigating, StatusClosed, true},
		{StatusResolved, StatusClosed, true},
		{StatusResolved, StatusOpen, true},
		{StatusResolved, StatusInvestigating, false},
		{StatusClosed, StatusOpen, true},
		{StatusClosed, StatusInvestigating, false},
		{StatusClosed, StatusResolved, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestApplyTransitionRejection(t *testing.T) {
	_, err := StatusClosed.ApplyTransition(StatusResolved)
	var terr *shared.InvalidTransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("ApplyTransition = %v, want InvalidTransitionError", err)
	}
	if terr.Entity != "incident" || terr.Current != "closed" || terr.Target != "resolved" {
		t.Fatalf("unexpected error detail: %+v", terr)
	}
}

func TestSeveritySteps(t *testing.T) {
	if got := SeverityLow.Escalate(); got != SeverityMedium {
		t.Fatalf("Escalate(low) = %s", got)
	}
	if got := SeverityCritical.Escalate(); got != SeverityCritical {
		t.Fatalf("Escalate(critical) = %s, want no-op", got)
	}
	if got := SeverityLow.Deescalate(); got != SeverityLow {
		t.Fatalf("Deescalate(low) = %s, want no-op", got)
	}
	if got := SeverityCritical.Deescalate(); got != SeverityHigh {
		t.Fatalf("Deescalate(critical) = %s", got)
	}
}

func TestAssignSideEffect(t *testing.T) {
	inc := validIncident()
	inc = inc.Assign("jmorales")
	if inc.AssignedTo != "jmorales" {
		t.Fatalf("AssignedTo = %q", inc.AssignedTo)
	}
	if inc.Status != StatusInvestigating {
		t.Fatalf("status after assigning open incident = %s, want investigating", inc.Status)
	}

	inc.Status = StatusResolved
	inc = inc.Assign("other")
	if inc.Status != StatusResolved {
		t.Fatalf("status after assigning resolved incident = %s, want unchanged", inc.Status)
	}
}

func TestIncidentFlags(t *testing.T) {
	inc := validIncident()
	if inc.IsCritical() {
		t.Fatal("medium incident reported critical")
	}
	inc.Severity = SeverityCritical
	if !inc.IsCritical() {
		t.Fatal("critical incident not reported critical")
	}
	if !inc.IsOpen() {
		t.Fatal("open incident not reported open")
	}
	inc.Status = StatusClosed
	if inc.IsOpen() {
		t.Fatal("closed incident reported open")
	}
}
