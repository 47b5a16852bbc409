package http

import (
	"marketplace/internal/core/application/usecases/queries"
)

// CreateOrderRequest is the body of POST /api/v1/orders. The caller becomes
// the client; exactly one of gig_id/service_id selects what is ordered.
type CreateOrderRequest struct {
	FreelancerID string  `json:"freelancer_id"`
	GigID        *string `json:"gig_id,omitempty"`
	ServiceID    *string `json:"service_id,omitempty"`
	TotalAmount  float64 `json:"total_amount"`
	Requirements string  `json:"requirements,omitempty"`
	DeliveryDate *string `json:"delivery_date,omitempty"`
}

// ChangeStatusRequest is the body of PATCH /api/v1/orders/:id/status.
type ChangeStatusRequest struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// AddNoteRequest is the body of POST /api/v1/orders/:id/updates.
type AddNoteRequest struct {
	Message string `json:"message"`
}

// ChangeStatusResponse is the body of a successful status transition: the
// order in its new state together with the audit entry the transition
// appended.
type ChangeStatusResponse struct {
	Order  queries.OrderResponse  `json:"order"`
	Update queries.UpdateResponse `json:"update"`
}

// Error is the uniform problem payload returned on every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
