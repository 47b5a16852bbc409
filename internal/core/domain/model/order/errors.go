package order

import (
	"errors"
	"fmt"
)

var (
	// ErrNotParticipant is returned when the requesting user is neither the
	// client nor the freelancer on the order.
	ErrNotParticipant = errors.New("user is not a party to this order")

	// ErrNoStatusChange is returned when the requested target status equals
	// the order's current status.
	ErrNoStatusChange = errors.New("order already has the requested status")

	// ErrInvalidTransition is the sentinel for transition-rule violations.
	// Use errors.Is against it; the concrete *InvalidTransitionError carries
	// the rejected (current, target, role) triple for diagnostics.
	ErrInvalidTransition = errors.New("status transition is not allowed")
)

// InvalidTransitionError reports a status change rejected by the transition
// table, including the concurrent-conflict case where the rule set is
// re-checked against store-fresh state.
type InvalidTransitionError struct {
	From Status
	To   Status
	Role Role
}

// NewInvalidTransitionError creates an error for a rejected transition.
func NewInvalidTransitionError(from, to Status, role Role) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Role: role}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot change status from %s to %s",
		ErrInvalidTransition, e.Role, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
