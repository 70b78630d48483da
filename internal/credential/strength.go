package credential

import (
	"unicode"
	"unicode/utf8"

	"github.com/vantage-intel/vantage/internal/shared"
)

// Strength labels ordered by score band.
const (
	LabelWeak       = "weak"
	LabelFair       = "fair"
	LabelGood       = "good"
	LabelStrong     = "strong"
	LabelVeryStrong = "very strong"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// ScoreStrength rates a password on a 0-100 scale and returns a label.
// Scoring: up to 30 points for length (2 per character, only counted from
// 8 characters up), 10 per character class present, and up to 30 points for
// distinct characters (2 each).
func ScoreStrength(plaintext string) (int, string) {
	if plaintext == "" {
		return 0, LabelWeak
	}

	score := 0
	if length := utf8.RuneCountInString(plaintext); length >= MinPasswordLength {
		score += min(30, length*2)
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	distinct := make(map[rune]struct{})
	for _, r := range plaintext {
		distinct[r] = struct{}{}
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, hasSymbol} {
		if ok {
			score += 10
		}
	}
	score += min(30, len(distinct)*2)

	return score, labelFor(score)
}

func labelFor(score int) string {
	switch {
	case score < 30:
		return LabelWeak
	case score < 50:
		return LabelFair
	case score < 70:
		return LabelGood
	case score < 90:
		return LabelStrong
	default:
		return LabelVeryStrong
	}
}

// ValidateStrength enforces the registration password policy. Checks run in
// a fixed order and stop at the first violation: length, uppercase,
// lowercase, digit, symbol.
func ValidateStrength(plaintext string) error {
	if utf8.RuneCountInString(plaintext) < MinPasswordLength {
		return shared.NewValidationError("password", "too_short", "password must be at least 8 characters long")
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range plaintext {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return shared.NewValidationError("password", "missing_uppercase", "password must contain an uppercase letter")
	case !hasLower:
		return shared.NewValidationError("password", "missing_lowercase", "password must contain a lowercase letter")
	case !hasDigit:
		return shared.NewValidationError("password", "missing_digit", "password must contain a digit")
	case !hasSymbol:
		return shared.NewValidationError("password", "missing_symbol", "password must contain a special character")
	}
	return nil
}
