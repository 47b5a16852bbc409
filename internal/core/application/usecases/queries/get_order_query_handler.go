package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler fetches one order from the database and enforces
// that the requester is one of its two participants.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no order
// carries the id, and order.ErrNotParticipant when the requester is neither
// the client nor the freelancer.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			freelancer_id,
			gig_id,
			service_id,
			total_amount,
			requirements,
			delivery_date,
			status,
			created_at,
			updated_at,
			completed_date
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	resp, err := scanOrderRow(row, query.RequesterID())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderResponse{}, err
	}

	if resp.ViewerRole == "" {
		return OrderResponse{}, order.ErrNotParticipant
	}

	return resp, nil
}
