package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ChangeOrderStatusResult carries the outcome of a successful status change:
// the updated order and the audit entry that recorded the transition.
type ChangeOrderStatusResult struct {
	Order  *order.Order
	Update *order.Update
}

// ChangeOrderStatusCommandHandler orchestrates role-gated status transitions.
// The audit entry and the status mutation are written inside one transaction,
// with the status write conditioned on the status observed at load time, so
// two concurrent requests from the same stale state cannot both apply.
// After a committed transition the raised domain events are handed to the
// outbound publisher exactly once.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewChangeOrderStatusCommand(orderID, requesterID, order.Completed, "all done")
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrNotParticipant):
//	    // 401
//	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, order.ErrNoStatusChange):
//	    // 409
//	case err != nil:
//	    // 404 / 500
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
// Requires a UoWFactory for transactional persistence and an EventPublisher
// for post-commit event delivery.
func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "change_order_status_handler"),
	}
}

// Handle processes the status change command.
//
// Loads the order, applies the transition through the aggregate (which
// enforces the role-conditioned transition table), appends the audit entry,
// and writes the new status conditioned on the loaded one. A conditional-write
// conflict is re-validated against store-fresh state and reported as the
// appropriate transition error rather than silently overwriting.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, errs.NewPersistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	updatesRepo := uow.OrderUpdateRepository()

	o, err := ordersRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	observedStatus := o.Status()

	update, err := o.ChangeStatus(cmd.RequesterID(), cmd.TargetStatus(), cmd.Message(), time.Now().UTC())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	// Audit entry first, status second, one commit covers both.
	if err = updatesRepo.Add(ctx, update); err != nil {
		return ChangeOrderStatusResult{}, errs.NewPersistenceError("append audit entry", err)
	}

	if err = ordersRepo.Update(ctx, o, observedStatus); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return ChangeOrderStatusResult{}, h.revalidateConflict(ctx, cmd)
		}
		return ChangeOrderStatusResult{}, errs.NewPersistenceError("update order status", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, errs.NewPersistenceError("commit status change", err)
	}

	h.publishEvents(ctx, o)

	return ChangeOrderStatusResult{Order: o, Update: update}, nil
}

// revalidateConflict re-derives the transition error against the now-current
// status after a lost compare-and-set race. The original write was rolled
// back; this only reads.
func (h ChangeOrderStatusCommandHandler) revalidateConflict(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.NewPersistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	fresh, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	role, err := fresh.RoleOf(cmd.RequesterID())
	if err != nil {
		return err
	}

	if cmd.TargetStatus() == fresh.Status() {
		return order.ErrNoStatusChange
	}

	return order.NewInvalidTransitionError(fresh.Status(), cmd.TargetStatus(), role)
}

func (h ChangeOrderStatusCommandHandler) publishEvents(ctx context.Context, o *order.Order) {
	for _, event := range o.DomainEvents() {
		if err := h.publisher.Publish(ctx, event); err != nil {
			h.logger.WarnContext(ctx, "failed to publish domain event",
				"event", event.EventName(),
				"order_id", event.AggregateID().String(),
				"error", err)
		}
	}
	o.ClearDomainEvents()
}
