package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists a user's orders from the database.
// The role filter picks which foreign key the user is matched against;
// without it the user is matched against both sides.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Results come back newest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
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
	`

	var args []any

	userID := query.UserID().Bytes()
	switch {
	case query.Role() != nil && *query.Role() == order.RoleClient:
		sql += ` WHERE client_id = ?`
		args = append(args, userID)
	case query.Role() != nil && *query.Role() == order.RoleFreelancer:
		sql += ` WHERE freelancer_id = ?`
		args = append(args, userID)
	default:
		sql += ` WHERE (client_id = ? OR freelancer_id = ?)`
		args = append(args, userID, userID)
	}

	if query.Status() != nil {
		sql += ` AND status = ?`
		args = append(args, query.Status().String())
	}

	sql += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)

	for rows.Next() {
		resp, scanErr := scanOrderRow(rows, query.UserID())
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// rowScanner is the subset of sql.Rows / sql.Row the order scan needs.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrderRow maps one orders row to an OrderResponse from the viewpoint of
// the given user.
func scanOrderRow(row rowScanner, viewer kernel.UUID) (OrderResponse, error) {
	var (
		id            uuid.UUID
		clientID      uuid.UUID
		freelancerID  uuid.UUID
		gigID         *uuid.UUID
		serviceID     *uuid.UUID
		totalAmount   float64
		requirements  string
		deliveryDate  *time.Time
		statusName    string
		createdAt     time.Time
		updatedAt     time.Time
		completedDate *time.Time
	)

	if err := row.Scan(
		&id,
		&clientID,
		&freelancerID,
		&gigID,
		&serviceID,
		&totalAmount,
		&requirements,
		&deliveryDate,
		&statusName,
		&createdAt,
		&updatedAt,
		&completedDate,
	); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	client, err := kernel.UUIDFromBytes(clientID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	freelancer, err := kernel.UUIDFromBytes(freelancerID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	var gig, service *kernel.UUID
	if gigID != nil {
		v, gigErr := kernel.UUIDFromBytes((*gigID)[:])
		if gigErr != nil {
			return OrderResponse{}, gigErr
		}
		gig = &v
	}
	if serviceID != nil {
		v, svcErr := kernel.UUIDFromBytes((*serviceID)[:])
		if svcErr != nil {
			return OrderResponse{}, svcErr
		}
		service = &v
	}

	status, err := order.StatusFromString(statusName)
	if err != nil {
		return OrderResponse{}, err
	}

	viewerRole := ""
	switch {
	case viewer.IsEqual(client):
		viewerRole = order.RoleClient.String()
	case viewer.IsEqual(freelancer):
		viewerRole = order.RoleFreelancer.String()
	}

	return OrderResponse{
		ID:            orderID,
		ClientID:      client,
		FreelancerID:  freelancer,
		GigID:         gig,
		ServiceID:     service,
		TotalAmount:   totalAmount,
		Requirements:  requirements,
		DeliveryDate:  deliveryDate,
		Status:        status.String(),
		StatusInfo:    status.Info(),
		ViewerRole:    viewerRole,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
		CompletedDate: completedDate,
	}, nil
}
