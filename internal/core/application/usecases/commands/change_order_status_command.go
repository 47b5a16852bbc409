package commands

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand represents a request by one party of an order to
// move it to a new status, with an optional human-readable note.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, requesterID, order.InProgress, "starting today")
//	if err != nil {
//	    return fmt.Errorf("invalid status change request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("status change rejected: %w", err)
//	}
//	fmt.Printf("Order is now %s", result.Order.Status())
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	requesterID  kernel.UUID
	targetStatus order.Status
	message      string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to change an order's status.
// Validates that both ids are valid, the target status is one of the five
// known statuses, and the optional message does not exceed the status-note
// limit. Returns an error if any validation fails.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	requesterID kernel.UUID,
	targetStatus order.Status,
	message string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequesterID(requesterID),
		cmd.setTargetStatus(targetStatus),
		cmd.setMessage(message),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequesterID returns the profile requesting the transition.
func (c ChangeOrderStatusCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// TargetStatus returns the desired new status.
func (c ChangeOrderStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// Message returns the optional note attached to the transition.
func (c ChangeOrderStatusCommand) Message() string {
	return c.message
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}
	c.requesterID = requesterID
	return nil
}

func (c *ChangeOrderStatusCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}
	c.targetStatus = targetStatus
	return nil
}

func (c *ChangeOrderStatusCommand) setMessage(message string) error {
	if utf8.RuneCountInString(message) > order.MaxStatusMessageLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"message",
			fmt.Errorf("message exceeds %d characters", order.MaxStatusMessageLength),
		)
	}
	c.message = message
	return nil
}
