// Package http exposes the order lifecycle over a JSON API. Handlers
// translate requests into commands and queries, and map domain errors onto
// HTTP status codes: outsiders get 401, impossible transitions 409, unknown
// orders 404, malformed input 400.
package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler
	addNoteHandler      commands.AddOrderNoteCommandHandler

	// Query handlers
	getOrdersHandler       queries.GetOrdersQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler
	getOrderUpdatesHandler queries.GetOrderUpdatesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	addNoteHandler commands.AddOrderNoteCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderUpdatesHandler queries.GetOrderUpdatesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		changeStatusHandler:    changeStatusHandler,
		addNoteHandler:         addNoteHandler,
		getOrdersHandler:       getOrdersHandler,
		getOrderHandler:        getOrderHandler,
		getOrderUpdatesHandler: getOrderUpdatesHandler,
	}
}

// RegisterRoutes mounts the order API under /api/v1 behind the given
// authentication middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	api := e.Group("/api/v1", auth)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/updates", s.AddOrderNote)
	api.GET("/orders/:id/updates", s.GetOrderUpdates)
}

// CreateOrder handles POST /api/v1/orders - places a new order with the
// authenticated user as client.
func (s *Server) CreateOrder(ctx echo.Context) error {
	clientID, ok := authenticatedUser(ctx)
	if !ok {
		return respondUnauthenticated(ctx)
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	freelancerID, err := kernel.UUIDFromString(req.FreelancerID)
	if err != nil {
		return badRequest(ctx, "Invalid freelancer_id: "+err.Error())
	}

	var gigID, serviceID *kernel.UUID
	if req.GigID != nil {
		id, idErr := kernel.UUIDFromString(*req.GigID)
		if idErr != nil {
			return badRequest(ctx, "Invalid gig_id: "+idErr.Error())
		}
		gigID = &id
	}
	if req.ServiceID != nil {
		id, idErr := kernel.UUIDFromString(*req.ServiceID)
		if idErr != nil {
			return badRequest(ctx, "Invalid service_id: "+idErr.Error())
		}
		serviceID = &id
	}

	amount, err := kernel.NewMoney(req.TotalAmount)
	if err != nil {
		return badRequest(ctx, "Invalid total_amount: "+err.Error())
	}

	var deliveryDate *time.Time
	if req.DeliveryDate != nil {
		parsed, dateErr := time.Parse(time.RFC3339, *req.DeliveryDate)
		if dateErr != nil {
			return badRequest(ctx, "Invalid delivery_date: "+dateErr.Error())
		}
		deliveryDate = &parsed
	}

	cmd, err := commands.NewCreateOrderCommand(
		clientID, freelancerID, gigID, serviceID, amount, req.Requirements, deliveryDate)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	metrics.OrdersCreated.Inc()
	return ctx.JSON(http.StatusCreated, orderPayload(created, clientID))
}

// GetOrders handles GET /api/v1/orders - lists the authenticated user's
// orders, optionally filtered by role and status.
func (s *Server) GetOrders(ctx echo.Context) error {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return respondUnauthenticated(ctx)
	}

	var roleFilter *order.Role
	if raw := ctx.QueryParam("role"); raw != "" {
		role, err := order.RoleFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid role: "+err.Error())
		}
		roleFilter = &role
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid status: "+err.Error())
		}
		statusFilter = &status
	}

	query, err := queries.NewGetOrdersQuery(userID, roleFilter, statusFilter)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id - fetches one order for a
// participant.
func (s *Server) GetOrder(ctx echo.Context) error {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return respondUnauthenticated(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID, userID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:id/status - applies a
// role-gated status transition.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return respondUnauthenticated(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, userID, target, req.Message)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	result, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, order.ErrInvalidTransition) || errors.Is(err, order.ErrNoStatusChange) {
			metrics.TransitionConflicts.Inc()
		}
		return respondError(ctx, err)
	}

	if role, roleErr := result.Order.RoleOf(userID); roleErr == nil {
		metrics.StatusTransitions.WithLabelValues(target.String(), role.String()).Inc()
	}

	return ctx.JSON(http.StatusOK, ChangeStatusResponse{
		Order:  orderPayload(result.Order, userID),
		Update: updatePayload(result.Update),
	})
}

// AddOrderNote handles POST /api/v1/orders/:id/updates - appends a note to
// the audit trail.
func (s *Server) AddOrderNote(ctx echo.Context) error {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return respondUnauthenticated(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req AddNoteRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddOrderNoteCommand(orderID, userID, req.Message)
	if err != nil {
		return badRequest(ctx, "Invalid note: "+err.Error())
	}

	note, err := s.addNoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	metrics.NotesAdded.Inc()
	return ctx.JSON(http.StatusCreated, updatePayload(note))
}

// GetOrderUpdates handles GET /api/v1/orders/:id/updates - lists the audit
// trail, newest first.
func (s *Server) GetOrderUpdates(ctx echo.Context) error {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return respondUnauthenticated(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderUpdatesQuery(orderID, userID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	updates, err := s.getOrderUpdatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, updates)
}

// orderPayload shapes an aggregate for the wire from a participant's
// viewpoint.
func orderPayload(o *order.Order, viewer kernel.UUID) queries.OrderResponse {
	viewerRole := ""
	if role, err := o.RoleOf(viewer); err == nil {
		viewerRole = role.String()
	}

	return queries.OrderResponse{
		ID:            o.ID(),
		ClientID:      o.ClientID(),
		FreelancerID:  o.FreelancerID(),
		GigID:         o.GigID(),
		ServiceID:     o.ServiceID(),
		TotalAmount:   o.TotalAmount().Amount(),
		Requirements:  o.Requirements(),
		DeliveryDate:  o.DeliveryDate(),
		Status:        o.Status().String(),
		StatusInfo:    o.Status().Info(),
		ViewerRole:    viewerRole,
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		CompletedDate: o.CompletedDate(),
	}
}

// updatePayload shapes an audit entry for the wire.
func updatePayload(u *order.Update) queries.UpdateResponse {
	resp := queries.UpdateResponse{
		ID:        u.ID(),
		OrderID:   u.OrderID(),
		AuthorID:  u.AuthorID(),
		Message:   u.Message(),
		CreatedAt: u.CreatedAt(),
	}

	if status := u.Status(); status != nil {
		name := status.String()
		info := status.Info()
		resp.Status = &name
		resp.StatusInfo = &info
	}

	return resp
}

// respondError maps domain and infrastructure errors onto HTTP statuses.
func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, order.ErrNotParticipant):
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "You are not a participant of this order",
		})
	case errors.Is(err, order.ErrNoStatusChange):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Order already has the requested status",
		})
	case errors.Is(err, order.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, order.ErrSameParties):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func respondUnauthenticated(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, Error{
		Code:    http.StatusUnauthorized,
		Message: "Invalid or missing credentials",
	})
}
