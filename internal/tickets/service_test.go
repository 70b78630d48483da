package tickets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-intel/vantage/internal/shared"
)

type memRepo struct {
	nextID  int64
	tickets map[int64]Ticket
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, tickets: map[int64]Ticket{}}
}

func (m *memRepo) FindByID(_ context.Context, id int64) (Ticket, error) {
	t, ok := m.tickets[id]
	if !ok {
		return Ticket{}, shared.ErrNotFound
	}
	return t, nil
}

func (m *memRepo) List(_ context.Context, req ListTicketsRequest) ([]Ticket, int, error) {
	var out []Ticket
	for _, t := range m.tickets {
		if req.Status != nil && string(t.Status) != *req.Status {
			continue
		}
		out = append(out, t)
	}
	return out, len(out), nil
}

func (m *memRepo) ListActive(_ context.Context) ([]Ticket, error) {
	var out []Ticket
	for _, t := range m.tickets {
		if t.Status.Active() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memRepo) Insert(_ context.Context, t Ticket) (int64, error) {
	id := m.nextID
	m.nextID++
	t.ID = id
	m.tickets[id] = t
	return id, nil
}

func (m *memRepo) Update(_ context.Context, t Ticket) error {
	if _, ok := m.tickets[t.ID]; !ok {
		return shared.ErrNotFound
	}
	m.tickets[t.ID] = t
	return nil
}

func (m *memRepo) Count(_ context.Context) (int, error) {
	return len(m.tickets), nil
}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, nil, nil, nil), repo
}

func TestServiceCreateDefaults(t *testing.T) {
	svc, _ := newTestService()

	tk, err := svc.Create(context.Background(), CreateTicketRequest{
		Title:       "Laptop will not boot after update",
		Description: "Black screen with a blinking cursor.",
		Category:    "hardware",
		Requester:   "mfarrell",
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, PriorityMedium, tk.Priority)
	assert.Equal(t, StatusOpen, tk.Status)
}

func TestServiceCreateRejectsBadCategory(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), CreateTicketRequest{
		Title:       "Need a standing desk",
		Description: "Back pain from the current setup.",
		Category:    "furniture",
		Requester:   "mfarrell",
	}, 1)
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Empty(t, repo.tickets)
}

func TestServiceTicketLifecycle(t *testing.T) {
	svc, _ := newTestService()
	tk, err := svc.Create(context.Background(), CreateTicketRequest{
		Title:       "Cannot reach the staging database",
		Description: "Timeouts on port 5432 from the office network.",
		Category:    "network",
		Priority:    "high",
		Requester:   "rsingh",
	}, 1)
	require.NoError(t, err)

	tk, err = svc.Assign(context.Background(), tk.ID, "agent1", 1)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, tk.Status)

	tk, err = svc.Transition(context.Background(), tk.ID, StatusPending, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, tk.Status)

	_, err = svc.Transition(context.Background(), tk.ID, StatusOpen, 1)
	require.Error(t, err)
	assert.True(t, shared.IsInvalidTransition(err))

	tk, err = svc.Transition(context.Background(), tk.ID, StatusResolved, 1)
	require.NoError(t, err)
	tk, err = svc.Transition(context.Background(), tk.ID, StatusClosed, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, tk.Status)
}

func TestServicePriorityShift(t *testing.T) {
	svc, _ := newTestService()
	tk, err := svc.Create(context.Background(), CreateTicketRequest{
		Title:       "Password reset loop on the portal",
		Description: "Reset emails keep pointing back to the form.",
		Category:    "access",
		Priority:    "urgent",
		Requester:   "jlee",
	}, 1)
	require.NoError(t, err)

	same, err := svc.RaisePriority(context.Background(), tk.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, PriorityUrgent, same.Priority, "raising urgent is a no-op")

	down, err := svc.LowerPriority(context.Background(), tk.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, down.Priority)
}

func TestServiceBreachedSLAs(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil, nil, nil)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	mk := func(priority Priority, status Status, age time.Duration) {
		tk := validTicket()
		tk.Priority = priority
		tk.Status = status
		tk.CreatedAt = now.Add(-age)
		_, err := repo.Insert(context.Background(), tk)
		require.NoError(t, err)
	}
	mk(PriorityUrgent, StatusOpen, 3*time.Hour)      // breached
	mk(PriorityUrgent, StatusOpen, 1*time.Hour)      // within window
	mk(PriorityLow, StatusPending, 100*time.Hour)    // breached
	mk(PriorityUrgent, StatusResolved, 10*time.Hour) // inactive

	breached, err := svc.BreachedSLAs(context.Background())
	require.NoError(t, err)
	assert.Len(t, breached, 2)
}
