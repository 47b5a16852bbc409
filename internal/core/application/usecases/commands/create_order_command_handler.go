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

// CreateOrderCommandHandler places new orders. The aggregate enforces the
// party and subject invariants; the handler persists the order and hands the
// creation event to the outbound publisher after commit.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for placing orders.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order creation command and returns the new aggregate
// in its initial pending state.
func (h CreateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.ClientID(),
		cmd.FreelancerID(),
		cmd.GigID(),
		cmd.ServiceID(),
		cmd.TotalAmount(),
		cmd.Requirements(),
		cmd.DeliveryDate(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, errs.NewPersistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, errs.NewPersistenceError("add order", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewPersistenceError("commit order creation", err)
	}

	h.publishEvents(ctx, o)

	return o, nil
}

func (h CreateOrderCommandHandler) publishEvents(ctx context.Context, o *order.Order) {
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
