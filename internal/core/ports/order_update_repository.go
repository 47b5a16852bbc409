package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderUpdateRepository defines the persistence contract for the append-only
// audit trail. Entries are inserted, never mutated or deleted.
type OrderUpdateRepository interface {
	// Add appends an audit entry. When called inside the same unit of work as
	// a status write, both land in one transaction.
	Add(ctx context.Context, entry *order.Update) error

	// GetAllForOrder retrieves the audit trail for an order, newest first.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Update, error)
}
