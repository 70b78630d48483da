// Package credential implements password hashing, verification, strength
// scoring, and temporary password generation. Every operation is a pure
// function over its inputs; the only state is the configured bcrypt cost.
package credential

import (
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vantage-intel/vantage/internal/shared"
)

// DefaultCost is the bcrypt work factor applied when none is configured.
const DefaultCost = 12

// Engine hashes and verifies passwords with a fixed work factor.
type Engine struct {
	cost int
}

// NewEngine constructs an Engine. Costs outside bcrypt's supported range
// fall back to DefaultCost.
func NewEngine(cost int) *Engine {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Engine{cost: cost}
}

// Cost returns the configured work factor.
func (e *Engine) Cost() int {
	return e.cost
}

// Hash derives a salted bcrypt hash from plaintext. Each call generates a
// fresh salt, so hashing the same input twice yields different strings.
func (e *Engine) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", shared.NewValidationError("password", "required", "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), e.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A malformed hash yields
// false, never an error; the comparison uses the cost encoded in the hash
// itself, so hashes produced under any valid work factor verify correctly.
func (e *Engine) Verify(plaintext, hash string) bool {
	if plaintext == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// NeedsRehash reports whether hash was produced with a lower work factor
// than target. Unparseable hashes report true so stale or corrupt
// credentials get replaced on next login.
func (e *Engine) NeedsRehash(hash string, target int) bool {
	cost, err := parseCost(hash)
	if err != nil {
		return true
	}
	return cost < target
}

// parseCost extracts the work factor from a bcrypt hash of the form
// $2b$12$... without running the full bcrypt machinery.
func parseCost(hash string) (int, error) {
	parts := strings.Split(hash, "$")
	if len(parts) < 4 {
		return 0, shared.NewValidationError("hash", "format", "malformed hash")
	}
	cost, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, err
	}
	return cost, nil
}
