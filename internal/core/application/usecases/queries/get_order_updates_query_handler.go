package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderUpdatesQueryHandler lists an order's audit trail from the
// database. The participant check runs against the orders row first, so the
// trail of someone else's order is never exposed.
type GetOrderUpdatesQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderUpdatesQueryHandler creates a handler for audit-trail queries.
func NewGetOrderUpdatesQueryHandler(db *gorm.DB) GetOrderUpdatesQueryHandler {
	return GetOrderUpdatesQueryHandler{db: db}
}

// Handle executes the query. Entries come back newest first.
func (h GetOrderUpdatesQueryHandler) Handle(
	ctx context.Context,
	query GetOrderUpdatesQuery,
) ([]UpdateResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.checkParticipant(ctx, query); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			author_id,
			status,
			message,
			created_at
		FROM order_updates
		WHERE order_id = ?
		ORDER BY created_at DESC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	updates := make([]UpdateResponse, 0)

	for rows.Next() {
		var (
			id         uuid.UUID
			orderID    uuid.UUID
			authorID   uuid.UUID
			statusName *string
			message    string
			createdAt  time.Time
		)

		if err = rows.Scan(&id, &orderID, &authorID, &statusName, &message, &createdAt); err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entryOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		entryAuthorID, idErr := kernel.UUIDFromBytes(authorID[:])
		if idErr != nil {
			return nil, idErr
		}

		resp := UpdateResponse{
			ID:        entryID,
			OrderID:   entryOrderID,
			AuthorID:  entryAuthorID,
			Message:   message,
			CreatedAt: createdAt,
		}

		if statusName != nil {
			status, statusErr := order.StatusFromString(*statusName)
			if statusErr != nil {
				return nil, statusErr
			}
			name := status.String()
			info := status.Info()
			resp.Status = &name
			resp.StatusInfo = &info
		}

		updates = append(updates, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return updates, nil
}

// checkParticipant resolves the requester's side of the order, failing with
// errs.ErrObjectNotFound for an unknown order and order.ErrNotParticipant
// for an outsider.
func (h GetOrderUpdatesQueryHandler) checkParticipant(
	ctx context.Context,
	query GetOrderUpdatesQuery,
) error {
	var clientID, freelancerID uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT client_id, freelancer_id
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&clientID, &freelancerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return err
	}

	requester := query.RequesterID().Bytes()
	if requester != clientID && requester != freelancerID {
		return order.ErrNotParticipant
	}

	return nil
}
