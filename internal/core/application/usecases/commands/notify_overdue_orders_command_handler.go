package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// NotifyOverdueOrdersCommandHandler runs the overdue-delivery sweep. The
// sweep is idempotent from the store's point of view; consumers that need
// at-most-once notification deduplicate on order id and delivery date.
type NotifyOverdueOrdersCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewNotifyOverdueOrdersCommandHandler creates a handler for the sweep.
func NewNotifyOverdueOrdersCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) NotifyOverdueOrdersCommandHandler {
	return NotifyOverdueOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "notify_overdue_orders_handler"),
	}
}

// Handle finds every overdue in-progress order and publishes an overdue
// event for it. Returns the number of orders reported.
func (h NotifyOverdueOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd NotifyOverdueOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, errs.NewPersistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	overdue, err := uow.OrderRepository().GetAllOverdue(ctx, now)
	if err != nil {
		return 0, errs.NewPersistenceError("list overdue orders", err)
	}

	reported := 0
	for _, o := range overdue {
		deliveryDate := o.DeliveryDate()
		if deliveryDate == nil {
			continue
		}

		event := order.OverdueEvent{
			EventID:      kernel.NewUUID(),
			OrderID:      o.ID(),
			ClientID:     o.ClientID(),
			FreelancerID: o.FreelancerID(),
			DeliveryDate: *deliveryDate,
			OccurredAt:   now,
		}

		if err = h.publisher.Publish(ctx, event); err != nil {
			h.logger.WarnContext(ctx, "failed to publish overdue event",
				"order_id", o.ID().String(),
				"error", err)
			continue
		}
		reported++
	}

	return reported, nil
}
