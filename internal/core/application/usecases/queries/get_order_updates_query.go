package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOrderUpdatesQueryIsNotConstructed = errors.New(
		"GetOrderUpdatesQuery must be created via NewGetOrderUpdatesQuery constructor",
	)
)

// GetOrderUpdatesQuery retrieves the audit trail of an order, newest entry
// first, on behalf of one of its participants.
//
// Example:
//
//	query, err := NewGetOrderUpdatesQuery(orderID, requesterID)
//	if err != nil {
//	    return err
//	}
//
//	updates, err := handler.Handle(ctx, query)
type GetOrderUpdatesQuery struct {
	orderID     kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderUpdatesQuery creates a query to list an order's audit trail.
func NewGetOrderUpdatesQuery(orderID, requesterID kernel.UUID) (GetOrderUpdatesQuery, error) {
	if err := errors.Join(orderID.Validate(), requesterID.Validate()); err != nil {
		return GetOrderUpdatesQuery{}, err
	}

	return GetOrderUpdatesQuery{
		orderID:     orderID,
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderUpdatesQueryIsNotConstructed if validation fails.
func (q GetOrderUpdatesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderUpdatesQueryIsNotConstructed)
}

// OrderID returns the order identifier.
func (q GetOrderUpdatesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// RequesterID returns the requesting user's profile reference.
func (q GetOrderUpdatesQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// UpdateResponse represents one audit-trail entry. Status and its display
// attributes are present only on entries that recorded a transition; a plain
// note carries just the message.
type UpdateResponse struct {
	ID         kernel.UUID       `json:"id"`
	OrderID    kernel.UUID       `json:"order_id"`
	AuthorID   kernel.UUID       `json:"author_id"`
	Status     *string           `json:"status,omitempty"`
	StatusInfo *order.StatusInfo `json:"status_info,omitempty"`
	Message    string            `json:"message,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
