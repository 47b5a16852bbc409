package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, f handlerFixture) commands.CreateOrderCommand {
	t.Helper()
	amount, err := kernel.NewMoney(300)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(
		f.clientID, f.freelancerID, &f.gigID, nil, amount, "three page redesign", nil,
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newHandlerFixture()
	cmd := newCreateOrderCommand(t, f)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("order.CreatedEvent")).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, publisher, testLogger())
	o, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, f.clientID, o.ClientID())
	assert.Equal(t, f.freelancerID, o.FreelancerID())
	assert.Empty(t, o.DomainEvents(), "events must be cleared after publication")

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	h := commands.NewCreateOrderCommandHandler(new(MockUoWFactory), new(MockEventPublisher), testLogger())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	f := newHandlerFixture()
	cmd := newCreateOrderCommand(t, f)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("unique violation")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, publisher, testLogger())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPersistenceFailed)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
