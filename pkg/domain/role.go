package domain

import (
	dErrors "foodbridge/pkg/domain-errors"
)

// Role gates what a user may do. Donors offer donations; recipients claim
// them. Any authenticated user may create a donation regardless of role; only
// recipients may claim.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleRecipient Role = "recipient"
)

// ParseRole validates a role string from a registration request.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "role cannot be empty")
	}
	r := Role(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "role must be 'donor' or 'recipient'")
	}
	return r, nil
}

// IsValid checks if the role is one of the supported values.
func (r Role) IsValid() bool {
	return r == RoleDonor || r == RoleRecipient
}

func (r Role) String() string {
	return string(r)
}
