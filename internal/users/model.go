package users

import (
	"regexp"

	"github.com/vantage-intel/vantage/internal/policy"
	"github.com/vantage-intel/vantage/internal/shared"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// User is a platform account. The password hash never leaves the package
// through JSON.
type User struct {
	shared.RecordHeader
	Username     string      `json:"username" db:"username"`
	PasswordHash string      `json:"-" db:"password_hash"`
	Role         policy.Role `json:"role" db:"role"`
}

// ValidateUsername enforces the account naming policy: 3 to 50 characters,
// letters, digits and underscores only.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return shared.NewValidationError("username", "min_length", "username must be at least 3 characters long")
	}
	if len(username) > 50 {
		return shared.NewValidationError("username", "max_length", "username must be at most 50 characters long")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewValidationError("username", "charset", "username may only contain letters, digits, and underscores")
	}
	return nil
}
