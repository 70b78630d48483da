package policy

import "testing"

func TestLevel(t *testing.T) {
	cases := []struct {
		role Role
		want int
	}{
		{RoleUser, 0},
		{RoleAnalyst, 1},
		{RoleAdmin, 2},
		{Role("superuser"), 0},
		{Role(""), 0},
	}
	for _, tc := range cases {
		if got := Level(tc.role); got != tc.want {
			t.Fatalf("Level(%q) = %d, want %d", tc.role, got, tc.want)
		}
	}
}

func TestHasPermission(t *testing.T) {
	if !HasPermission(RoleAdmin, RoleAnalyst) {
		t.Fatalf("admin should satisfy analyst requirement")
	}
	if HasPermission(RoleUser, RoleAnalyst) {
		t.Fatalf("user should not satisfy analyst requirement")
	}
	if !HasPermission(RoleAnalyst, RoleAnalyst) {
		t.Fatalf("role should satisfy itself")
	}
	// Unknown roles collapse to the lowest level on both sides.
	if !HasPermission(Role("mystery"), RoleUser) {
		t.Fatalf("unknown actual role maps to user level")
	}
}

func TestCanAccessClassification(t *testing.T) {
	cases := []struct {
		role  Role
		class Classification
		want  bool
	}{
		{RoleUser, ClassificationPublic, true},
		{RoleAnalyst, ClassificationPublic, true},
		{RoleAdmin, ClassificationPublic, true},
		{RoleUser, ClassificationInternal, false},
		{RoleAnalyst, ClassificationInternal, true},
		{RoleAnalyst, ClassificationConfidential, false},
		{RoleAdmin, ClassificationConfidential, true},
		{RoleUser, ClassificationRestricted, false},
		{RoleAnalyst, ClassificationRestricted, false},
		{RoleAdmin, ClassificationRestricted, true},
		{Role("ghost"), ClassificationPublic, false},
		{RoleAdmin, Classification("unknown"), false},
	}
	for _, tc := range cases {
		if got := CanAccessClassification(tc.role, tc.class); got != tc.want {
			t.Fatalf("CanAccessClassification(%q, %q) = %v, want %v", tc.role, tc.class, got, tc.want)
		}
	}
}

func TestClassificationSteps(t *testing.T) {
	if got := ClassificationPublic.Upgrade(); got != ClassificationInternal {
		t.Fatalf("public upgrades to internal, got %q", got)
	}
	if got := ClassificationRestricted.Upgrade(); got != ClassificationRestricted {
		t.Fatalf("upgrade at ceiling must be a no-op, got %q", got)
	}
	if got := ClassificationPublic.Downgrade(); got != ClassificationPublic {
		t.Fatalf("downgrade at floor must be a no-op, got %q", got)
	}
	if got := ClassificationRestricted.Downgrade(); got != ClassificationConfidential {
		t.Fatalf("restricted downgrades to confidential, got %q", got)
	}
}
