package incidents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-intel/vantage/internal/shared"
)

type memRepo struct {
	nextID    int64
	incidents map[int64]Incident
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, incidents: map[int64]Incident{}}
}

func (m *memRepo) FindByID(_ context.Context, id int64) (Incident, error) {
	inc, ok := m.incidents[id]
	if !ok {
		return Incident{}, shared.ErrNotFound
	}
	return inc, nil
}

func (m *memRepo) List(_ context.Context, req ListIncidentsRequest) ([]Incident, int, error) {
	var out []Incident
	for _, inc := range m.incidents {
		if req.Status != nil && string(inc.Status) != *req.Status {
			continue
		}
		if req.Severity != nil && string(inc.Severity) != *req.Severity {
			continue
		}
		out = append(out, inc)
	}
	return out, len(out), nil
}

func (m *memRepo) Insert(_ context.Context, inc Incident) (int64, error) {
	id := m.nextID
	m.nextID++
	inc.ID = id
	m.incidents[id] = inc
	return id, nil
}

func (m *memRepo) Update(_ context.Context, inc Incident) error {
	if _, ok := m.incidents[inc.ID]; !ok {
		return shared.ErrNotFound
	}
	m.incidents[inc.ID] = inc
	return nil
}

func (m *memRepo) Count(_ context.Context) (int, error) {
	return len(m.incidents), nil
}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, nil, nil, nil), repo
}

func TestServiceCreateDefaults(t *testing.T) {
	svc, _ := newTestService()

	inc, err := svc.Create(context.Background(), CreateIncidentRequest{
		Title:        "Unusual outbound traffic from build server",
		Description:  "Spike of DNS tunneling patterns observed.",
		IncidentDate: "2026-05-02",
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, SeverityMedium, inc.Severity)
	assert.Equal(t, StatusOpen, inc.Status)
	assert.NotZero(t, inc.ID)
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), CreateIncidentRequest{
		Title:        "abc",
		Description:  "too short title",
		IncidentDate: "2026-05-02",
	}, 1)
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Empty(t, repo.incidents, "invalid incident must not be persisted")
}

func TestServiceTransition(t *testing.T) {
	svc, _ := newTestService()
	inc, err := svc.Create(context.Background(), CreateIncidentRequest{
		Title:        "Ransomware note on shared drive",
		Description:  "Encrypted files detected in finance share.",
		IncidentDate: "2026-05-02",
		Severity:     "critical",
	}, 1)
	require.NoError(t, err)

	inc, err = svc.Transition(context.Background(), inc.ID, StatusInvestigating, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusInvestigating, inc.Status)

	_, err = svc.Transition(context.Background(), inc.ID, StatusInvestigating, 1)
	require.Error(t, err)
	assert.True(t, shared.IsInvalidTransition(err))

	stored, err := svc.Get(context.Background(), inc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInvestigating, stored.Status, "rejected transition must not mutate")
}

func TestServiceAssign(t *testing.T) {
	svc, _ := newTestService()
	inc, err := svc.Create(context.Background(), CreateIncidentRequest{
		Title:        "Credential stuffing against portal",
		Description:  "Burst of failed logins from rotating IPs.",
		IncidentDate: "2026-05-02",
	}, 1)
	require.NoError(t, err)

	inc, err = svc.Assign(context.Background(), inc.ID, "analyst7", 1)
	require.NoError(t, err)
	assert.Equal(t, "analyst7", inc.AssignedTo)
	assert.Equal(t, StatusInvestigating, inc.Status)
}

func TestServiceEscalateBounds(t *testing.T) {
	svc, _ := newTestService()
	inc, err := svc.Create(context.Background(), CreateIncidentRequest{
		Title:        "Malware beacon from workstation",
		Description:  "C2 callback observed by the proxy.",
		IncidentDate: "2026-05-02",
		Severity:     "critical",
	}, 1)
	require.NoError(t, err)

	same, err := svc.Escalate(context.Background(), inc.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, SeverityCritical, same.Severity, "escalating critical is a no-op")

	down, err := svc.Deescalate(context.Background(), inc.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, SeverityHigh, down.Severity)
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc, _ := newTestService()
	title := "A perfectly valid new title"
	_, err := svc.Update(context.Background(), 99, UpdateIncidentRequest{Title: &title}, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
