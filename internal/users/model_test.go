package users

import (
	"errors"
	"strings"
	"testing"

	"github.com/vantage-intel/vantage/internal/shared"
)

func TestValidateUsername(t *testing.T) {
	cases := []struct {
		name     string
		username string
		wantRule string
	}{
		{"valid", "analyst_7", ""},
		{"valid mixed case", "JDoe42", ""},
		{"too short", "ab", "min_length"},
		{"too long", strings.Repeat("a", 51), "max_length"},
		{"at max length", strings.Repeat("a", 50), ""},
		{"space", "j doe", "charset"},
		{"dash", "j-doe", "charset"},
		{"unicode", "josé", "charset"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.username)
			if tc.wantRule == "" {
				if err != nil {
					t.Fatalf("ValidateUsername(%q) = %v, want nil", tc.username, err)
				}
				return
			}
			var verr *shared.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateUsername(%q) = %v, want ValidationError", tc.username, err)
			}
			if verr.Rule != tc.wantRule {
				t.Fatalf("rule = %q, want %q", verr.Rule, tc.wantRule)
			}
		})
	}
}
