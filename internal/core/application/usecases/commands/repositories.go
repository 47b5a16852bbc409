// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure a status mutation and its audit entry commit as
// one atomic unit, and let tests substitute in-memory fakes implementing the
// same conditional-write contract.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUpdateRepoFactory provides access to the audit-trail repository within a transaction.
	OrderUpdateRepoFactory interface {
		OrderUpdateRepository() ports.OrderUpdateRepository
	}

	// UoW manages transactions across the order aggregate and its audit trail.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   ordersRepo := uow.OrderRepository()
	//   updatesRepo := uow.OrderUpdateRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		OrderUpdateRepoFactory
	}

	// UoWFactory creates new unit of work instances, one per command.
	UoWFactory interface {
		Create() UoW
	}
)
