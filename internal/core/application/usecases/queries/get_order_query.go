package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single order on behalf of one of its
// participants. Requests from users outside the order are rejected with
// order.ErrNotParticipant, indistinguishably from the handler's side whether
// the order exists for them or not.
type GetOrderQuery struct {
	orderID     kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to fetch one order for a participant.
func NewGetOrderQuery(orderID, requesterID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), requesterID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:     orderID,
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// RequesterID returns the requesting user's profile reference.
func (q GetOrderQuery) RequesterID() kernel.UUID {
	return q.requesterID
}
