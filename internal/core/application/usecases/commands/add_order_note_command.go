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
	ErrAddOrderNoteCommandIsNotConstructed = errors.New(
		"AddOrderNoteCommand must be created via NewAddOrderNoteCommand constructor",
	)
)

// AddOrderNoteCommand represents a request to append a narrative entry to an
// order's audit trail without touching its status.
type AddOrderNoteCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	requesterID kernel.UUID
	message     string

	guard guard.ConstructorGuard
}

// NewAddOrderNoteCommand creates a command to append a narrative note.
// The message is required and must not exceed the note limit.
func NewAddOrderNoteCommand(
	orderID kernel.UUID,
	requesterID kernel.UUID,
	message string,
) (AddOrderNoteCommand, error) {
	cmd := AddOrderNoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequesterID(requesterID),
		cmd.setMessage(message),
	); err != nil {
		return AddOrderNoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddOrderNoteCommandIsNotConstructed if validation fails.
func (c AddOrderNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderNoteCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to annotate.
func (c AddOrderNoteCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequesterID returns the profile posting the note.
func (c AddOrderNoteCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Message returns the note text.
func (c AddOrderNoteCommand) Message() string {
	return c.message
}

func (c *AddOrderNoteCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AddOrderNoteCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}
	c.requesterID = requesterID
	return nil
}

func (c *AddOrderNoteCommand) setMessage(message string) error {
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	if utf8.RuneCountInString(message) > order.MaxNoteLength {
		return errs.NewValueIsInvalidErrorWithCause(
			"message",
			fmt.Errorf("message exceeds %d characters", order.MaxNoteLength),
		)
	}
	c.message = message
	return nil
}
