package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)

	// ErrSubjectIsRequired is returned when neither a gig nor a service
	// reference is supplied.
	ErrSubjectIsRequired = errors.New("either gig_id or service_id is required")

	// ErrSubjectIsAmbiguous is returned when both a gig and a service
	// reference are supplied.
	ErrSubjectIsAmbiguous = errors.New("gig_id and service_id are mutually exclusive")
)

// CreateOrderCommand represents a request to place a new order. The caller
// becomes the client; the subject is exactly one of a gig or a service.
//
// Example:
//
//	amount, _ := kernel.NewMoney(250.00)
//	cmd, err := NewCreateOrderCommand(clientID, freelancerID, &gigID, nil, amount, "two revisions included", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	clientID     kernel.UUID
	freelancerID kernel.UUID
	gigID        *kernel.UUID
	serviceID    *kernel.UUID
	totalAmount  kernel.Money
	requirements string
	deliveryDate *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates the party references, the exactly-one-subject rule, and the
// amount. The aggregate re-checks the same invariants on construction.
func NewCreateOrderCommand(
	clientID kernel.UUID,
	freelancerID kernel.UUID,
	gigID *kernel.UUID,
	serviceID *kernel.UUID,
	totalAmount kernel.Money,
	requirements string,
	deliveryDate *time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParties(clientID, freelancerID),
		cmd.setSubject(gigID, serviceID),
		cmd.setTotalAmount(totalAmount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.requirements = requirements
	cmd.deliveryDate = deliveryDate

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// ClientID returns the ordering client's profile reference.
func (c CreateOrderCommand) ClientID() kernel.UUID {
	return c.clientID
}

// FreelancerID returns the freelancer's profile reference.
func (c CreateOrderCommand) FreelancerID() kernel.UUID {
	return c.freelancerID
}

// GigID returns the gig reference, nil when a service is ordered.
func (c CreateOrderCommand) GigID() *kernel.UUID {
	return c.gigID
}

// ServiceID returns the service reference, nil when a gig is ordered.
func (c CreateOrderCommand) ServiceID() *kernel.UUID {
	return c.serviceID
}

// TotalAmount returns the agreed price.
func (c CreateOrderCommand) TotalAmount() kernel.Money {
	return c.totalAmount
}

// Requirements returns the optional free-text brief.
func (c CreateOrderCommand) Requirements() string {
	return c.requirements
}

// DeliveryDate returns the optional target delivery date.
func (c CreateOrderCommand) DeliveryDate() *time.Time {
	return c.deliveryDate
}

func (c *CreateOrderCommand) setParties(clientID, freelancerID kernel.UUID) error {
	if err := errors.Join(clientID.Validate(), freelancerID.Validate()); err != nil {
		return err
	}
	c.clientID = clientID
	c.freelancerID = freelancerID
	return nil
}

func (c *CreateOrderCommand) setSubject(gigID, serviceID *kernel.UUID) error {
	if gigID == nil && serviceID == nil {
		return ErrSubjectIsRequired
	}
	if gigID != nil && serviceID != nil {
		return ErrSubjectIsAmbiguous
	}
	c.gigID = gigID
	c.serviceID = serviceID
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	c.totalAmount = amount
	return nil
}
