package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// EventPublisher delivers domain events to the outbound bus after the
// changes that raised them were committed. The lifecycle manager does not
// depend on any particular transport; delivery to subscribers is best-effort
// and a missed push is reconciled by a plain re-read.
type EventPublisher interface {
	Publish(ctx context.Context, event order.DomainEvent) error
}
