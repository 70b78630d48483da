// Package policy defines the role hierarchy and the classification access
// matrix. Both enumerations are closed: adding a role or classification
// means extending the switches here, and nothing else.
package policy

// Role is an ordered access level.
type Role string

// Roles in ascending privilege order.
const (
	RoleUser    Role = "user"
	RoleAnalyst Role = "analyst"
	RoleAdmin   Role = "admin"
)

// Roles lists all valid roles in ascending order.
func Roles() []Role {
	return []Role{RoleUser, RoleAnalyst, RoleAdmin}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAnalyst, RoleAdmin:
		return true
	}
	return false
}

// Level maps a role to its numeric privilege level. Unknown roles map to 0,
// the least privileged level.
func Level(r Role) int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleAnalyst:
		return 1
	default:
		return 0
	}
}

// HasPermission reports whether actual meets or exceeds required.
func HasPermission(actual, required Role) bool {
	return Level(actual) >= Level(required)
}

// Classification is a dataset sensitivity level.
type Classification string

// Classifications in ascending sensitivity order.
const (
	ClassificationPublic       Classification = "public"
	ClassificationInternal     Classification = "internal"
	ClassificationConfidential Classification = "confidential"
	ClassificationRestricted   Classification = "restricted"
)

// Classifications lists all valid levels in ascending sensitivity order.
func Classifications() []Classification {
	return []Classification{
		ClassificationPublic,
		ClassificationInternal,
		ClassificationConfidential,
		ClassificationRestricted,
	}
}

// Valid reports whether c is a known classification.
func (c Classification) Valid() bool {
	switch c {
	case ClassificationPublic, ClassificationInternal, ClassificationConfidential, ClassificationRestricted:
		return true
	}
	return false
}

// Upgrade moves one step up the sensitivity order. At the ceiling it is a
// no-op, not an error.
func (c Classification) Upgrade() Classification {
	switch c {
	case ClassificationPublic:
		return ClassificationInternal
	case ClassificationInternal:
		return ClassificationConfidential
	case ClassificationConfidential:
		return ClassificationRestricted
	default:
		return c
	}
}

// Downgrade moves one step down the sensitivity order. At the floor it is a
// no-op, not an error.
func (c Classification) Downgrade() Classification {
	switch c {
	case ClassificationRestricted:
		return ClassificationConfidential
	case ClassificationConfidential:
		return ClassificationInternal
	case ClassificationInternal:
		return ClassificationPublic
	default:
		return c
	}
}

// CanAccessClassification applies the access matrix: public is open to all
// roles, internal to analysts and admins, confidential and restricted to
// admins only. Unknown classifications deny everyone.
func CanAccessClassification(role Role, c Classification) bool {
	switch c {
	case ClassificationPublic:
		return role.Valid()
	case ClassificationInternal:
		return role == RoleAnalyst || role == RoleAdmin
	case ClassificationConfidential, ClassificationRestricted:
		return role == RoleAdmin
	default:
		return false
	}
}
