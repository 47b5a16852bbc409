package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var (
	ErrNotifyOverdueOrdersCommandIsNotConstructed = errors.New(
		"NotifyOverdueOrdersCommand must be created via NewNotifyOverdueOrdersCommand constructor",
	)
)

// NotifyOverdueOrdersCommand triggers the overdue-delivery sweep: every
// in-progress order whose delivery date has passed gets an overdue event on
// the bus. The sweep never mutates orders, it only reports them.
//
// Example:
//
//	cmd := NewNotifyOverdueOrdersCommand()
//	reported, err := handler.Handle(ctx, cmd)
type NotifyOverdueOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewNotifyOverdueOrdersCommand creates a command to trigger the sweep.
// This is a parameterless command used by the scheduled job.
func NewNotifyOverdueOrdersCommand() NotifyOverdueOrdersCommand {
	return NotifyOverdueOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrNotifyOverdueOrdersCommandIsNotConstructed if validation fails.
func (c NotifyOverdueOrdersCommand) Validate() error {
	return c.guard.Validate(ErrNotifyOverdueOrdersCommandIsNotConstructed)
}
