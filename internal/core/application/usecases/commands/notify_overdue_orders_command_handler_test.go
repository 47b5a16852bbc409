package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (f handlerFixture) newOverdueOrder(t *testing.T) *order.Order {
	t.Helper()
	o := f.newPendingOrder(t)
	_, err := o.ChangeStatus(f.freelancerID, order.InProgress, "", testNow(t))
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func (f handlerFixture) newOverdueOrderWithDeadline(t *testing.T, deadline time.Time) *order.Order {
	t.Helper()
	amount, err := kernel.NewMoney(150)
	require.NoError(t, err)
	o, err := order.NewOrder(
		kernel.NewUUID(), f.clientID, f.freelancerID,
		&f.gigID, nil, amount, "", &deadline, testNow(t),
	)
	require.NoError(t, err)
	_, err = o.ChangeStatus(f.freelancerID, order.InProgress, "", testNow(t))
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestNotifyOverdueOrdersCommandHandler_Handle_PublishesPerOrder(t *testing.T) {
	ctx := t.Context()
	f := newHandlerFixture()
	first := f.newOverdueOrderWithDeadline(t, testNow(t).Add(-48*time.Hour))
	second := f.newOverdueOrderWithDeadline(t, testNow(t).Add(-24*time.Hour))

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAllOverdue", ctx, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{first, second}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.AnythingOfType("order.OverdueEvent")).Return(nil).Twice()

	h := commands.NewNotifyOverdueOrdersCommandHandler(factory, publisher, testLogger())
	reported, err := h.Handle(ctx, commands.NewNotifyOverdueOrdersCommand())
	require.NoError(t, err)
	assert.Equal(t, 2, reported)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestNotifyOverdueOrdersCommandHandler_Handle_SkipsOrdersWithoutDeliveryDate(t *testing.T) {
	ctx := t.Context()
	f := newHandlerFixture()

	// newPendingOrder builds orders without a delivery date; a row like this
	// should never match the sweep query, but the handler must not trust it.
	o := f.newOverdueOrder(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAllOverdue", ctx, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{o}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewNotifyOverdueOrdersCommandHandler(factory, publisher, testLogger())
	reported, err := h.Handle(ctx, commands.NewNotifyOverdueOrdersCommand())
	require.NoError(t, err)
	assert.Equal(t, 0, reported)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestNotifyOverdueOrdersCommandHandler_Handle_PublishFailureContinues(t *testing.T) {
	ctx := t.Context()
	f := newHandlerFixture()
	first := f.newOverdueOrderWithDeadline(t, testNow(t).Add(-48*time.Hour))
	second := f.newOverdueOrderWithDeadline(t, testNow(t).Add(-24*time.Hour))

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAllOverdue", ctx, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{first, second}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down")).Once()
	publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

	h := commands.NewNotifyOverdueOrdersCommandHandler(factory, publisher, testLogger())
	reported, err := h.Handle(ctx, commands.NewNotifyOverdueOrdersCommand())
	require.NoError(t, err)
	assert.Equal(t, 1, reported, "one failed publish must not abort the sweep")
	publisher.AssertExpectations(t)
}

func TestNotifyOverdueOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	var cmd commands.NotifyOverdueOrdersCommand // not constructed properly

	h := commands.NewNotifyOverdueOrdersCommandHandler(new(MockUoWFactory), new(MockEventPublisher), testLogger())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNotifyOverdueOrdersCommandIsNotConstructed)
}
