package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrSameParties is returned when the client and freelancer references point to the same profile.
	ErrSameParties = errors.New("client and freelancer must be different profiles")

	// ErrSubjectRequired is returned when neither a gig nor a service reference is set.
	ErrSubjectRequired = errors.New("order requires a gig or a service reference")

	// ErrSubjectConflict is returned when both a gig and a service reference are set.
	ErrSubjectConflict = errors.New("order cannot reference both a gig and a service")
)

// Order represents a single engagement between a client and a freelancer for
// a gig or a service. It is the aggregate root that owns the order lifecycle
// from placement through completion, cancellation or dispute.
//
// Order follows these invariants:
//   - Client and freelancer are distinct profiles, immutable after creation
//   - Exactly one of gig/service is referenced, fixed at creation
//   - Total amount is positive and immutable after creation
//   - Status transitions follow the role-conditioned transition table
//   - The completion date is set exactly when the order transitions to Completed
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// clientID references the profile that placed the order
	clientID kernel.UUID

	// freelancerID references the profile performing the work
	freelancerID kernel.UUID

	// gigID references the ordered gig (nil when a service was ordered)
	gigID *kernel.UUID

	// serviceID references the ordered service (nil when a gig was ordered)
	serviceID *kernel.UUID

	// totalAmount is the agreed price, fixed at creation
	totalAmount kernel.Money

	// requirements is the client's optional free-text brief
	requirements string

	// deliveryDate is the optional target delivery date
	deliveryDate *time.Time

	// status is the current state in the order lifecycle
	status Status

	// createdAt is set once at creation
	createdAt time.Time

	// updatedAt is bumped on every status mutation
	updatedAt time.Time

	// completedDate is set only on the transition into Completed
	completedDate *time.Time

	// events holds domain events raised since the last ClearDomainEvents
	events []DomainEvent

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates a new Order in Pending status. This is the only way to
// place a valid order, ensuring all business invariants hold.
//
// Exactly one of gigID/serviceID must be non-nil. The client and freelancer
// must reference different profiles. The creation timestamp is passed in so
// callers control the clock.
//
// A CreatedEvent is raised on the new aggregate; it is published once the
// order is committed to the store.
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	freelancerID kernel.UUID,
	gigID *kernel.UUID,
	serviceID *kernel.UUID,
	totalAmount kernel.Money,
	requirements string,
	deliveryDate *time.Time,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setParties(clientID, freelancerID),
		o.setSubject(gigID, serviceID),
		o.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	o.requirements = requirements
	o.deliveryDate = deliveryDate

	o.raise(CreatedEvent{
		EventID:      kernel.NewUUID(),
		OrderID:      o.id,
		ClientID:     o.clientID,
		FreelancerID: o.freelancerID,
		TotalAmount:  o.totalAmount.Amount(),
		OccurredAt:   now,
	})

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts any valid status and raises no events, but still enforces the
// structural invariants so corrupt rows are caught at the boundary.
func RestoreOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	freelancerID kernel.UUID,
	gigID *kernel.UUID,
	serviceID *kernel.UUID,
	totalAmount kernel.Money,
	requirements string,
	deliveryDate *time.Time,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	completedDate *time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setParties(clientID, freelancerID),
		o.setSubject(gigID, serviceID),
		o.setTotalAmount(totalAmount),
		status.Validate(),
		status.ValidateCanHaveCompletedDate(completedDate != nil),
	); err != nil {
		return nil, err
	}

	o.requirements = requirements
	o.deliveryDate = deliveryDate
	o.status = status
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	o.completedDate = completedDate

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientID returns the profile reference of the ordering client.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// FreelancerID returns the profile reference of the freelancer.
func (o *Order) FreelancerID() kernel.UUID {
	return o.freelancerID
}

// GigID returns the ordered gig reference, nil when a service was ordered.
func (o *Order) GigID() *kernel.UUID {
	return o.gigID
}

// ServiceID returns the ordered service reference, nil when a gig was ordered.
func (o *Order) ServiceID() *kernel.UUID {
	return o.serviceID
}

// TotalAmount returns the agreed price.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Requirements returns the client's free-text brief, may be empty.
func (o *Order) Requirements() string {
	return o.requirements
}

// DeliveryDate returns the target delivery date, nil when none was agreed.
func (o *Order) DeliveryDate() *time.Time {
	return o.deliveryDate
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// CompletedDate returns when the order was completed.
// Returns nil if the order never reached Completed.
func (o *Order) CompletedDate() *time.Time {
	return o.completedDate
}

// RoleOf resolves which side of the order the given profile occupies.
// Returns ErrNotParticipant when the profile is neither party.
func (o *Order) RoleOf(userID kernel.UUID) (Role, error) {
	switch {
	case o.clientID.IsEqual(userID):
		return RoleClient, nil
	case o.freelancerID.IsEqual(userID):
		return RoleFreelancer, nil
	default:
		return RoleUnknown, ErrNotParticipant
	}
}

// ChangeStatus applies a requested status transition on behalf of requesterID.
//
// Precondition checks, in order:
//   - requester must be the order's client or freelancer (ErrNotParticipant)
//   - target must differ from the current status (ErrNoStatusChange)
//   - the transition table must permit (current, role) -> target
//     (InvalidTransitionError)
//
// On success the status is updated, updatedAt is refreshed, the completion
// date is set when the order moves into Completed, a StatusChangedEvent is
// raised, and an audit entry recording the requester, the new status, and the
// optional message (at most MaxStatusMessageLength characters) is returned.
// Persisting the order and the entry atomically is the caller's job.
func (o *Order) ChangeStatus(
	requesterID kernel.UUID,
	target Status,
	message string,
	now time.Time,
) (*Update, error) {
	role, err := o.RoleOf(requesterID)
	if err != nil {
		return nil, err
	}

	if err = target.Validate(); err != nil {
		return nil, err
	}

	if target == o.status {
		return nil, ErrNoStatusChange
	}

	if !o.status.CanTransition(role, target) {
		return nil, NewInvalidTransitionError(o.status, target, role)
	}

	update, err := NewStatusUpdate(kernel.NewUUID(), o.id, requesterID, target, message, now)
	if err != nil {
		return nil, err
	}

	previous := o.status
	o.status = target
	o.updatedAt = now
	if target == Completed {
		completed := now
		o.completedDate = &completed
	}

	o.raise(StatusChangedEvent{
		EventID:        kernel.NewUUID(),
		OrderID:        o.id,
		ClientID:       o.clientID,
		FreelancerID:   o.freelancerID,
		ChangedBy:      requesterID,
		PreviousStatus: previous.String(),
		NewStatus:      target.String(),
		OccurredAt:     now,
	})

	return update, nil
}

// AddNote appends a narrative audit entry on behalf of requesterID.
// The requester must be a party to the order. The order's status and
// updatedAt are left untouched; a note is a pure audit record.
func (o *Order) AddNote(requesterID kernel.UUID, message string, now time.Time) (*Update, error) {
	if _, err := o.RoleOf(requesterID); err != nil {
		return nil, err
	}

	return NewNote(kernel.NewUUID(), o.id, requesterID, message, now)
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
// The caller publishes them after the aggregate's changes are committed.
func (o *Order) DomainEvents() []DomainEvent {
	return o.events
}

// ClearDomainEvents drops the accumulated events once they are published.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) raise(event DomainEvent) {
	o.events = append(o.events, event)
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setParties validates and sets the client and freelancer references.
// The two must point to different profiles.
func (o *Order) setParties(clientID, freelancerID kernel.UUID) error {
	if err := errors.Join(clientID.Validate(), freelancerID.Validate()); err != nil {
		return err
	}
	if clientID.IsEqual(freelancerID) {
		return ErrSameParties
	}
	o.clientID = clientID
	o.freelancerID = freelancerID
	return nil
}

// setSubject validates and sets the gig/service reference.
// Exactly one of the two must be present.
func (o *Order) setSubject(gigID, serviceID *kernel.UUID) error {
	if gigID == nil && serviceID == nil {
		return ErrSubjectRequired
	}
	if gigID != nil && serviceID != nil {
		return ErrSubjectConflict
	}
	if gigID != nil {
		if err := gigID.Validate(); err != nil {
			return err
		}
		o.gigID = gigID
	}
	if serviceID != nil {
		if err := serviceID.Validate(); err != nil {
			return err
		}
		o.serviceID = serviceID
	}
	return nil
}

// setTotalAmount validates and sets the agreed price.
func (o *Order) setTotalAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("total amount", err)
	}
	o.totalAmount = amount
	return nil
}
