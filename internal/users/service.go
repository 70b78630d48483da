package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vantage-intel/vantage/internal/credential"
	"github.com/vantage-intel/vantage/internal/platform/db"
	"github.com/vantage-intel/vantage/internal/policy"
	"github.com/vantage-intel/vantage/internal/shared"
)

// Repository defines the record store contract for user accounts.
type Repository interface {
	FindByID(ctx context.Context, id int64) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context, req ListUsersRequest) ([]User, int, error)
	Insert(ctx context.Context, u User) (int64, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateRole(ctx context.Context, id int64, role policy.Role) error
	Count(ctx context.Context) (int, error)
}

// Service holds account business rules around the credential engine.
type Service struct {
	repo   Repository
	engine *credential.Engine
	audit  *shared.AuditLogger
	log    *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, engine *credential.Engine, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, engine: engine, audit: audit, log: logger}
}

// Register creates an account. The password must pass the strength policy
// before it is hashed; duplicate usernames surface as ErrDuplicate.
func (s *Service) Register(ctx context.Context, req RegisterRequest, actorID int64) (User, error) {
	if err := ValidateUsername(req.Username); err != nil {
		return User{}, err
	}
	if err := credential.ValidateStrength(req.Password); err != nil {
		return User{}, err
	}

	role := policy.RoleUser
	if req.Role != "" {
		role = policy.Role(req.Role)
		if !role.Valid() {
			return User{}, shared.NewValidationError("role", "enum", "role must be one of: user, analyst, admin")
		}
	}

	hash, err := s.engine.Hash(req.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{Username: req.Username, PasswordHash: hash, Role: role}
	id, err := s.repo.Insert(ctx, u)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return User{}, shared.ErrDuplicate
		}
		return User{}, fmt.Errorf("register user: %w", err)
	}
	u.ID = id

	s.record(ctx, actorID, "user.register", id, map[string]any{"role": role})
	return u, nil
}

// Authenticate checks a username/password pair. A hash produced under a
// lower work factor than the engine's current one is transparently upgraded
// on successful login.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return User{}, shared.ErrInvalidCredentials
	}
	if !s.engine.Verify(password, u.PasswordHash) {
		return User{}, shared.ErrInvalidCredentials
	}

	if s.engine.NeedsRehash(u.PasswordHash, s.engine.Cost()) {
		if hash, err := s.engine.Hash(password); err == nil {
			if err := s.repo.UpdatePasswordHash(ctx, u.ID, hash); err == nil {
				u.PasswordHash = hash
			} else if s.log != nil {
				s.log.Warn("rehash on login failed", "user_id", u.ID, "error", err)
			}
		}
	}
	return u, nil
}

// Get fetches an account by ID.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of accounts with the total count.
func (s *Service) List(ctx context.Context, req ListUsersRequest) ([]User, int, error) {
	return s.repo.List(ctx, req)
}

// ChangePassword replaces the password after verifying the current one and
// running the new one through the strength policy.
func (s *Service) ChangePassword(ctx context.Context, id int64, req ChangePasswordRequest) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.engine.Verify(req.CurrentPassword, u.PasswordHash) {
		return shared.ErrInvalidCredentials
	}
	if err := credential.ValidateStrength(req.NewPassword); err != nil {
		return err
	}

	hash, err := s.engine.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePasswordHash(ctx, id, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	s.record(ctx, id, "user.change_password", id, nil)
	return nil
}

// ResetPassword issues a temporary password for the account and returns the
// plaintext exactly once. The temporary password satisfies the strength
// policy by construction.
func (s *Service) ResetPassword(ctx context.Context, id int64, actorID int64) (string, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return "", err
	}

	temp, err := credential.GenerateTemporary(credential.TempPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	hash, err := s.engine.Hash(temp)
	if err != nil {
		return "", fmt.Errorf("hash temporary password: %w", err)
	}
	if err := s.repo.UpdatePasswordHash(ctx, id, hash); err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}

	s.record(ctx, actorID, "user.reset_password", id, nil)
	return temp, nil
}

// AssignRole changes the account role.
func (s *Service) AssignRole(ctx context.Context, id int64, role policy.Role, actorID int64) (User, error) {
	if !role.Valid() {
		return User{}, shared.NewValidationError("role", "enum", "role must be one of: user, analyst, admin")
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return User{}, fmt.Errorf("assign role: %w", err)
	}
	from := u.Role
	u.Role = role
	s.record(ctx, actorID, "user.assign_role", id, map[string]any{"from": from, "to": role})
	return u, nil
}

func (s *Service) record(ctx context.Context, actorID int64, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "user",
		EntityID: fmt.Sprintf("%d", entityID),
		Meta:     meta,
	})
	if err != nil && s.log != nil {
		s.log.Warn("audit record failed", "action", action, "error", err)
	}
}
