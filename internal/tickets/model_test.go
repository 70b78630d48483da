package tickets

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vantage-intel/vantage/internal/shared"
)

func validTicket() Ticket {
	return Ticket{
		Title:       "VPN drops every twenty minutes",
		Description: "Connection resets while on home wifi.",
		Category:    CategoryNetwork,
		Priority:    PriorityMedium,
		Status:      StatusOpen,
		Requester:   "dkim",
	}
}

func TestTicketValidate(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*Ticket)
		wantRule string
	}{
		{"valid", func(*Ticket) {}, ""},
		{"empty title", func(tk *Ticket) { tk.Title = "" }, "required"},
		{"short title", func(tk *Ticket) { tk.Title = "VPN" }, "min_length"},
		{"empty description", func(tk *Ticket) { tk.Description = " " }, "required"},
		{"empty requester", func(tk *Ticket) { tk.Requester = "" }, "required"},
		{"unknown category", func(tk *Ticket) { tk.Category = "printers" }, "enum"},
		{"unknown priority", func(tk *Ticket) { tk.Priority = "asap" }, "enum"},
		{"unknown status", func(tk *Ticket) { tk.Status = "investigating" }, "enum"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tk := validTicket()
			tc.mutate(&tk)
			err := tk.Validate()
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

func TestTicketValidateReportsFieldsInOrder(t *testing.T) {
	// Several fields invalid at once: the first in declaration order wins.
	tk := validTicket()
	tk.Priority = "asap"
	tk.Category = "printers"
	tk.Requester = ""
	err := tk.Validate()
	var verr *shared.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() = %v, want ValidationError", err)
	}
	if verr.Field != "priority" {
		t.Fatalf("field = %q, want %q", verr.Field, "priority")
	}

	tk.Priority = PriorityMedium
	err = tk.Validate()
	if !errors.As(err, &verr) || verr.Field != "category" {
		t.Fatalf("after fixing priority, field = %v, want category", err)
	}
}

func TestTicketJSONUsesTitleField(t *testing.T) {
	data, err := json.Marshal(validTicket())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"title"`) {
		t.Fatalf("serialized ticket missing title field: %s", data)
	}
	if strings.Contains(string(data), `"subject"`) {
		t.Fatalf("serialized ticket carries a subject field: %s", data)
	}
}

func TestTicketStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusClosed, true},
		{StatusOpen, StatusPending, false},
		{StatusOpen, StatusResolved, false},
		{StatusInProgress, StatusPending, true},
		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusOpen, true},
		{StatusInProgress, StatusClosed, false},
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusResolved, true},
		{StatusPending, StatusClosed, true},
		{StatusPending, StatusOpen, false},
		{StatusResolved, StatusClosed, true},
		{StatusResolved, StatusOpen, true},
		{StatusResolved, StatusPending, false},
		{StatusClosed, StatusOpen, true},
		{StatusClosed, StatusInProgress, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestSLAHours(t *testing.T) {
	cases := []struct {
		priority Priority
		hours    int
	}{
		{PriorityUrgent, 2},
		{PriorityHigh, 8},
		{PriorityMedium, 24},
		{PriorityLow, 72},
		{Priority("bogus"), 72},
	}
	for _, tc := range cases {
		if got := tc.priority.SLAHours(); got != tc.hours {
			t.Errorf("SLAHours(%s) = %d, want %d", tc.priority, got, tc.hours)
		}
	}
}

func TestIsSLABreached(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		priority Priority
		status   Status
		age      time.Duration
		want     bool
	}{
		{"low under window", PriorityLow, StatusOpen, 71 * time.Hour, false},
		{"low over window", PriorityLow, StatusOpen, 73 * time.Hour, true},
		{"low over but resolved", PriorityLow, StatusResolved, 73 * time.Hour, false},
		{"low over but closed", PriorityLow, StatusClosed, 73 * time.Hour, false},
		{"urgent over window", PriorityUrgent, StatusInProgress, 3 * time.Hour, true},
		{"urgent at boundary", PriorityUrgent, StatusOpen, 2 * time.Hour, false},
		{"pending counts as active", PriorityHigh, StatusPending, 9 * time.Hour, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tk := validTicket()
			tk.Priority = tc.priority
			tk.Status = tc.status
			tk.CreatedAt = now.Add(-tc.age)
			if got := tk.IsSLABreached(now); got != tc.want {
				t.Fatalf("IsSLABreached = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsSLABreachedZeroCreatedAt(t *testing.T) {
	tk := validTicket()
	tk.Priority = PriorityUrgent
	if tk.IsSLABreached(time.Now()) {
		t.Fatal("ticket without creation timestamp must never report a breach")
	}
}

func TestTicketAssignSideEffect(t *testing.T) {
	tk := validTicket()
	tk = tk.Assign("agent3")
	if tk.AssignedTo != "agent3" || tk.Status != StatusInProgress {
		t.Fatalf("assign open ticket: got %q/%s", tk.AssignedTo, tk.Status)
	}

	tk.Status = StatusPending
	tk = tk.Assign("agent4")
	if tk.Status != StatusPending {
		t.Fatalf("status after assigning pending ticket = %s, want unchanged", tk.Status)
	}
}

func TestPrioritySteps(t *testing.T) {
	if got := PriorityLow.Raise(); got != PriorityMedium {
		t.Fatalf("Raise(low) = %s", got)
	}
	if got := PriorityUrgent.Raise(); got != PriorityUrgent {
		t.Fatalf("Raise(urgent) = %s, want no-op", got)
	}
	if got := PriorityLow.Lower(); got != PriorityLow {
		t.Fatalf("Lower(low) = %s, want no-op", got)
	}
	if got := PriorityUrgent.Lower(); got != PriorityHigh {
		t.Fatalf("Lower(urgent) = %s", got)
	}
}
