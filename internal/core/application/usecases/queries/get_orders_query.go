// Package queries contains read operations for the order lifecycle.
// Implements the Query pattern for the read side of the CQRS architecture.
// Handlers read directly from the database, bypassing the domain aggregates,
// and return flat response structures shaped for presentation.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery retrieves the orders a user participates in, newest first.
// The role filter narrows the listing to one side of the marketplace: as a
// client the user sees orders they placed, as a freelancer orders they
// fulfil. Without the filter both sides are returned. The status filter
// narrows to a single lifecycle status.
//
// Example:
//
//	role := order.RoleFreelancer
//	query, err := NewGetOrdersQuery(userID, &role, nil)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	userID kernel.UUID
	role   *order.Role
	status *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query to list a user's orders.
// Both filters are optional; pass nil to leave them out.
func NewGetOrdersQuery(userID kernel.UUID, role *order.Role, status *order.Status) (GetOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	if role != nil {
		if err := role.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		userID: userID,
		role:   role,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// UserID returns the requesting user's profile reference.
func (q GetOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// Role returns the optional role filter.
func (q GetOrdersQuery) Role() *order.Role {
	return q.role
}

// Status returns the optional status filter.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// OrderResponse represents one order as presented to a participant. Status
// travels as its canonical lowercase name alongside the display attributes,
// so clients render badges without holding their own status table.
type OrderResponse struct {
	ID            kernel.UUID      `json:"id"`
	ClientID      kernel.UUID      `json:"client_id"`
	FreelancerID  kernel.UUID      `json:"freelancer_id"`
	GigID         *kernel.UUID     `json:"gig_id,omitempty"`
	ServiceID     *kernel.UUID     `json:"service_id,omitempty"`
	TotalAmount   float64          `json:"total_amount"`
	Requirements  string           `json:"requirements,omitempty"`
	DeliveryDate  *time.Time       `json:"delivery_date,omitempty"`
	Status        string           `json:"status"`
	StatusInfo    order.StatusInfo `json:"status_info"`
	ViewerRole    string           `json:"viewer_role"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	CompletedDate *time.Time       `json:"completed_date,omitempty"`
}
