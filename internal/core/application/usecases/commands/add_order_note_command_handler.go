package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// AddOrderNoteCommandHandler appends narrative audit entries. A note is a
// pure audit record: the order row itself is never written, so there is no
// conditional-write concern here beyond the party check.
type AddOrderNoteCommandHandler struct {
	uowFactory UoWFactory
}

// NewAddOrderNoteCommandHandler creates a handler for narrative notes.
func NewAddOrderNoteCommandHandler(uowFactory UoWFactory) AddOrderNoteCommandHandler {
	return AddOrderNoteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the note command. Loads the order to verify the requester
// is a party to it, then appends the entry. Returns the created entry.
func (h AddOrderNoteCommandHandler) Handle(
	ctx context.Context,
	cmd AddOrderNoteCommand,
) (*order.Update, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.NewPersistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	note, err := o.AddNote(cmd.RequesterID(), cmd.Message(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderUpdateRepository().Add(ctx, note); err != nil {
		return nil, errs.NewPersistenceError("append audit entry", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewPersistenceError("commit audit entry", err)
	}

	return note, nil
}
