package auth

import (
	"context"
	"time"

	"github.com/vantage-intel/vantage/internal/users"
)

// Authenticator verifies a username/password pair. Satisfied by the users
// service.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (users.User, error)
}

// Service wraps authentication business rules.
type Service struct {
	accounts Authenticator
	repo     Repository
}

// NewService constructs a new Service.
func NewService(accounts Authenticator, repo Repository) *Service {
	return &Service{accounts: accounts, repo: repo}
}

// Authenticate validates credentials against the account store.
func (s *Service) Authenticate(ctx context.Context, username, password string) (users.User, error) {
	return s.accounts.Authenticate(ctx, username, password)
}

// RegisterSession persists session metadata.
func (s *Service) RegisterSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.CreateSession(ctx, id, userID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.DeleteSession(ctx, id)
}
