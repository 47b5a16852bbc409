// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "number of orders placed",
		},
	)

	StatusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "number of applied order status transitions",
		},
		[]string{"to", "role"},
	)

	TransitionConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_status_transition_conflicts_total",
			Help: "number of status transitions rejected as invalid or concurrent",
		},
	)

	NotesAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_notes_total",
			Help: "number of notes appended to order audit trails",
		},
	)

	OverdueOrdersDetected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_overdue_detected_total",
			Help: "number of in-progress orders found past their delivery date",
		},
	)
)

func Init() {
	prometheus.MustRegister(
		OrdersCreated,
		StatusTransitions,
		TransitionConflicts,
		NotesAdded,
		OverdueOrdersDetected,
	)
}
