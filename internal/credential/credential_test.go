package credential

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/vantage-intel/vantage/internal/shared"
)

// Hashing tests use MinCost to keep the suite fast; verification must honor
// whatever cost is embedded in the hash.
func testEngine() *Engine {
	return NewEngine(bcrypt.MinCost)
}

func TestHashAndVerifyRoundTrip(t *testing.T) {
	engine := testEngine()
	hash, err := engine.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !engine.Verify("correct horse battery staple", hash) {
		t.Fatalf("Verify rejected the password it was hashed from")
	}
	if engine.Verify("wrong password", hash) {
		t.Fatalf("Verify accepted a different password")
	}
}

func TestHashSaltsEachCall(t *testing.T) {
	engine := testEngine()
	first, err := engine.Hash("repeatable-input")
	if err != nil {
		t.Fatalf("first Hash: %v", err)
	}
	second, err := engine.Hash("repeatable-input")
	if err != nil {
		t.Fatalf("second Hash: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same input were identical, salt is not fresh")
	}
}

func TestHashRejectsEmptyInput(t *testing.T) {
	engine := testEngine()
	if _, err := engine.Hash(""); !shared.IsValidation(err) {
		t.Fatalf("expected ValidationError for empty input, got %v", err)
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	engine := testEngine()
	for _, hash := range []string{"", "not-a-hash", "$2b$zz$garbage"} {
		if engine.Verify("anything", hash) {
			t.Fatalf("Verify accepted malformed hash %q", hash)
		}
	}
}

func TestVerifyAcceptsAnyValidCost(t *testing.T) {
	engine := NewEngine(DefaultCost)
	low, err := bcrypt.GenerateFromPassword([]byte("cross-cost"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generate low-cost hash: %v", err)
	}
	if !engine.Verify("cross-cost", string(low)) {
		t.Fatalf("Verify rejected a hash with a lower cost than the engine's")
	}
}

func TestNeedsRehash(t *testing.T) {
	engine := testEngine()
	low, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !engine.NeedsRehash(string(low), DefaultCost) {
		t.Fatalf("hash at MinCost should need rehash to reach cost %d", DefaultCost)
	}
	if engine.NeedsRehash(string(low), bcrypt.MinCost) {
		t.Fatalf("hash already at target cost should not need rehash")
	}
	if !engine.NeedsRehash("garbage", DefaultCost) {
		t.Fatalf("unparseable hash must fail safe to true")
	}
	if !engine.NeedsRehash("", DefaultCost) {
		t.Fatalf("empty hash must fail safe to true")
	}
}

func TestNewEngineClampsCost(t *testing.T) {
	if got := NewEngine(99).Cost(); got != DefaultCost {
		t.Fatalf("out-of-range cost should fall back to %d, got %d", DefaultCost, got)
	}
	if got := NewEngine(10).Cost(); got != 10 {
		t.Fatalf("in-range cost should be kept, got %d", got)
	}
}

func TestGenerateTemporaryClassCoverage(t *testing.T) {
	for i := 0; i < 20; i++ {
		pw, err := GenerateTemporary(TempPasswordLength)
		if err != nil {
			t.Fatalf("GenerateTemporary: %v", err)
		}
		if len(pw) != TempPasswordLength {
			t.Fatalf("expected length %d got %d", TempPasswordLength, len(pw))
		}
		if !strings.ContainsAny(pw, lowerChars) {
			t.Fatalf("password %q missing lowercase", pw)
		}
		if !strings.ContainsAny(pw, upperChars) {
			t.Fatalf("password %q missing uppercase", pw)
		}
		if !strings.ContainsAny(pw, digitChars) {
			t.Fatalf("password %q missing digit", pw)
		}
		if !strings.ContainsAny(pw, symbolChars) {
			t.Fatalf("password %q missing symbol", pw)
		}
	}
}

func TestGenerateTemporaryRejectsShortLength(t *testing.T) {
	if _, err := GenerateTemporary(3); !shared.IsValidation(err) {
		t.Fatalf("expected ValidationError for length 3, got %v", err)
	}
}
