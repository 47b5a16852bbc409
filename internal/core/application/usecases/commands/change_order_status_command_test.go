package commands_test

import (
	"strings"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	requesterID := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, requesterID, order.Completed, "delivered")
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, requesterID, cmd.RequesterID())
	assert.Equal(t, order.Completed, cmd.TargetStatus())
	assert.Equal(t, "delivered", cmd.Message())
}

func TestNewChangeOrderStatusCommand_EmptyMessageAllowed(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(), order.Cancelled, "")
	require.NoError(t, err)
}

func TestNewChangeOrderStatusCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.UUID{}, kernel.NewUUID(), order.Completed, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewChangeOrderStatusCommand_InvalidStatus(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(), order.Unknown, "")
	require.Error(t, err)
}

func TestNewChangeOrderStatusCommand_MessageTooLong(t *testing.T) {
	long := strings.Repeat("x", order.MaxStatusMessageLength+1)
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(), order.Completed, long)
	require.Error(t, err)
}

func TestNewChangeOrderStatusCommand_MultibyteMessageAtLimit(t *testing.T) {
	msg := strings.Repeat("ё", order.MaxStatusMessageLength)
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), kernel.NewUUID(), order.Completed, msg)
	require.NoError(t, err)
}

func TestChangeOrderStatusCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.ChangeOrderStatusCommand
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
}
