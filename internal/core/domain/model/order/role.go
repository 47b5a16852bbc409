package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role identifies which side of an order a user occupies.
// Transition permissions and order list filtering are both keyed by it.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleClient is the party who placed the order and pays for it.
	RoleClient

	// RoleFreelancer is the party who performs the work.
	RoleFreelancer
)

// getValidRoleStrings returns the wire representations of valid roles.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleClient:     "client",
		RoleFreelancer: "freelancer",
	}
}

// RoleFromString parses a wire representation ("client" or "freelancer")
// into a Role. Returns an error for anything else.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns "client" or "freelancer", or "unknown" for invalid values.
// Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getValidRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
