package credential

import (
	"errors"
	"testing"

	"github.com/vantage-intel/vantage/internal/shared"
)

func ruleOf(t *testing.T, err error) string {
	t.Helper()
	var verr *shared.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	return verr.Rule
}

func TestScoreStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		minScore int
		maxScore int
		label    string
	}{
		{"empty", "", 0, 0, LabelWeak},
		{"short all lower", "abc", 0, 29, LabelWeak},
		{"all four classes distinct 16", "Abcdef12!@Ghij34", 90, 100, LabelVeryStrong},
		{"long single class", "aaaaaaaaaaaa", 0, 49, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, label := ScoreStrength(tc.password)
			if score < tc.minScore || score > tc.maxScore {
				t.Fatalf("score %d outside [%d,%d]", score, tc.minScore, tc.maxScore)
			}
			if tc.label != "" && label != tc.label {
				t.Fatalf("expected label %q got %q", tc.label, label)
			}
		})
	}
}

func TestScoreStrengthShortPasswordsSkipLengthPoints(t *testing.T) {
	// 7 chars with all four classes: no length points, 40 variety,
	// 14 distinct.
	score, _ := ScoreStrength("Ab1!cde")
	if score != 54 {
		t.Fatalf("expected 54 got %d", score)
	}
}

func TestStrengthCountsRunesNotBytes(t *testing.T) {
	// Four CJK runes are twelve bytes; length is measured in characters.
	if got := ruleOf(t, ValidateStrength("東西南北")); got != "too_short" {
		t.Fatalf("expected too_short got %q", got)
	}

	score, _ := ScoreStrength("東西南北")
	// No length points, one class, 4 distinct: 0 + 10 + 8.
	if score != 18 {
		t.Fatalf("expected 18 got %d", score)
	}

	// Eight runes (24 bytes): length points are 8*2, not capped at 30.
	score, _ = ScoreStrength("東西南北春夏秋冬")
	// 16 length + 10 variety + 16 distinct.
	if score != 42 {
		t.Fatalf("expected 42 got %d", score)
	}
}

func TestValidateStrengthOrder(t *testing.T) {
	cases := []struct {
		name     string
		password string
		rule     string
	}{
		{"too short", "short", "too_short"},
		{"length checked before classes", "Sh0rt!", "too_short"},
		{"missing uppercase", "alllowercase1!", "missing_uppercase"},
		{"missing lowercase", "ALLUPPERCASE1!", "missing_lowercase"},
		{"missing digit", "NoDigitsHere!", "missing_digit"},
		{"missing symbol", "NoSymbols123", "missing_symbol"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStrength(tc.password)
			if err == nil {
				t.Fatalf("expected rule %q, got nil", tc.rule)
			}
			if got := ruleOf(t, err); got != tc.rule {
				t.Fatalf("expected rule %q got %q", tc.rule, got)
			}
		})
	}

	if err := ValidateStrength("Acceptable1!"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}
