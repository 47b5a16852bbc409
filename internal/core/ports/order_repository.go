package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Writes against the status column are conditional: the store only applies a
// change if the row still carries the status the caller read, which keeps two
// concurrent transitions from both succeeding off the same stale state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is a
	// compare-and-set conditioned on expectedStatus, the status the caller
	// observed when it loaded the aggregate. Returns
	// errs.ErrConcurrentModification when the row's status no longer matches,
	// in which case nothing was written.
	Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllOverdue retrieves in-progress orders whose target delivery date
	// lies before the given instant. Used by the overdue-delivery sweep.
	GetAllOverdue(ctx context.Context, asOf time.Time) ([]*order.Order, error)
}
