package order

import (
	"fmt"
	"slices"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine whose transitions are conditioned on the
// role of the requesting party (see allowedTransitions).
//
// State transitions:
//
//	pending ──┬──> in_progress ──> completed ──> disputed
//	          │         │              │
//	          ├──> cancelled           │
//	          └──> disputed <──────────┘
//
// pending is the sole initial state. completed and cancelled are terminal
// for the normal flow; disputed is reachable from any non-terminal state and
// freezes the order to role-initiated transitions (dispute resolution is an
// external process).
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// The order is waiting for the freelancer to start work.
	Pending

	// InProgress indicates the freelancer has started work on the order.
	InProgress

	// Completed indicates the freelancer has delivered the work.
	// Only a client-initiated dispute can move the order further.
	Completed

	// Cancelled indicates the order was called off before completion.
	// This is a terminal state.
	Cancelled

	// Disputed indicates the order is under external dispute resolution.
	// No role-initiated transition leaves this state.
	Disputed
)

// getStatusStrings returns a map of Status values to their wire/storage
// representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
		Disputed:   "disputed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
		Disputed:   "disputed",
	}
}

// allowedTransitions is the role-conditioned transition table, keyed by
// (current status, requester role). A transition is permitted iff the target
// appears in the corresponding slice. Only the freelancer starts work or
// declares delivery; only the client disputes a completed order; either party
// may escalate to dispute before a terminal state.
//
// The table is static data checked by set membership, so every cell is
// independently auditable and testable.
func allowedTransitions() map[Status]map[Role][]Status {
	return map[Status]map[Role][]Status{
		Pending: {
			RoleClient:     {Cancelled, Disputed},
			RoleFreelancer: {InProgress, Cancelled, Disputed},
		},
		InProgress: {
			RoleClient:     {Disputed},
			RoleFreelancer: {Completed, Disputed},
		},
		Completed: {
			RoleClient:     {Disputed},
			RoleFreelancer: {},
		},
		Cancelled: {},
		Disputed:  {},
	}
}

// StatusFromString parses a wire/storage representation into a Status.
// Returns an error for anything outside the five valid values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, InProgress, Completed, Cancelled, Disputed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status ("pending",
// "in_progress", ...). Returns "unknown" for invalid values.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// AllowedTargets returns the statuses the given role may move an order in
// this status to. Returns an empty slice for terminal states, unknown
// statuses, and unknown roles.
func (s Status) AllowedTargets(role Role) []Status {
	return allowedTransitions()[s][role]
}

// CanTransition reports whether the given role may move an order from this
// status to target, per the transition table.
func (s Status) CanTransition(role Role, target Status) bool {
	return slices.Contains(s.AllowedTargets(role), target)
}

// IsTerminal reports whether no role-initiated transition leaves this
// status for either party.
func (s Status) IsTerminal() bool {
	for _, targets := range allowedTransitions()[s] {
		if len(targets) > 0 {
			return false
		}
	}
	return true
}

// ValidateCanHaveCompletedDate validates the consistency between order status
// and the completion timestamp.
//
// Business rules:
//   - Completed orders must carry a completion date
//   - Pending, InProgress and Cancelled orders must not
//   - Disputed orders may carry one (dispute raised after completion)
//
// Parameters:
//   - hasCompletedDate: whether the order has a completion date set
//
// Returns a validation error if the combination is inconsistent.
func (s Status) ValidateCanHaveCompletedDate(hasCompletedDate bool) error {
	if hasCompletedDate && s != Completed && s != Disputed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a completed date", s.String()),
		)
	}

	if !hasCompletedDate && s == Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no completed date", s.String()),
		)
	}

	return nil
}
