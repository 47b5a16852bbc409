package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// Event names as they appear on the wire. Downstream consumers (notification
// dispatcher, realtime fan-out) subscribe by these names.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderOverdue       = "order.delivery_overdue"
)

// DomainEvent is raised by the order aggregate after a committed change and
// handed to the outbound event publisher. Delivery to subscribers is
// best-effort; the lifecycle manager only guarantees the event is raised
// exactly once per committed change.
type DomainEvent interface {
	// EventName returns the wire name of the event.
	EventName() string

	// AggregateID returns the order the event belongs to. Used as the
	// partition key so events for one order stay ordered.
	AggregateID() kernel.UUID
}

// CreatedEvent is raised when a new order is placed.
type CreatedEvent struct {
	EventID      kernel.UUID `json:"event_id"`
	OrderID      kernel.UUID `json:"order_id"`
	ClientID     kernel.UUID `json:"client_id"`
	FreelancerID kernel.UUID `json:"freelancer_id"`
	TotalAmount  float64     `json:"total_amount"`
	OccurredAt   time.Time   `json:"occurred_at"`
}

func (e CreatedEvent) EventName() string {
	return EventOrderCreated
}

func (e CreatedEvent) AggregateID() kernel.UUID {
	return e.OrderID
}

// StatusChangedEvent is raised once per committed status transition.
type StatusChangedEvent struct {
	EventID        kernel.UUID `json:"event_id"`
	OrderID        kernel.UUID `json:"order_id"`
	ClientID       kernel.UUID `json:"client_id"`
	FreelancerID   kernel.UUID `json:"freelancer_id"`
	ChangedBy      kernel.UUID `json:"changed_by"`
	PreviousStatus string      `json:"previous_status"`
	NewStatus      string      `json:"new_status"`
	OccurredAt     time.Time   `json:"occurred_at"`
}

func (e StatusChangedEvent) EventName() string {
	return EventOrderStatusChanged
}

func (e StatusChangedEvent) AggregateID() kernel.UUID {
	return e.OrderID
}

// OverdueEvent is raised by the overdue-delivery sweep for in-progress orders
// whose target delivery date has passed.
type OverdueEvent struct {
	EventID      kernel.UUID `json:"event_id"`
	OrderID      kernel.UUID `json:"order_id"`
	ClientID     kernel.UUID `json:"client_id"`
	FreelancerID kernel.UUID `json:"freelancer_id"`
	DeliveryDate time.Time   `json:"delivery_date"`
	OccurredAt   time.Time   `json:"occurred_at"`
}

func (e OverdueEvent) EventName() string {
	return EventOrderOverdue
}

func (e OverdueEvent) AggregateID() kernel.UUID {
	return e.OrderID
}
