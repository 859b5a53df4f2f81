// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"amigos/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
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

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// ClientRepoFactory provides access to the client repository within a transaction.
	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	// CancellationRepoFactory provides access to the cancellation record
	// repository within a transaction.
	CancellationRepoFactory interface {
		CancellationRepository() ports.CancellationRepository
	}

	// OrderUoW manages transactions for order-only operations: the
	// grouping pipeline and scheduled-order promotion.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AcceptUoW manages transactions for order acceptance, which touches
	// the order (or a whole group) and the accepting courier together.
	AcceptUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	// AcceptUoWFactory creates new acceptance unit of work instances.
	AcceptUoWFactory interface {
		Create() AcceptUoW
	}

	// CancelUoW manages transactions for cancellations: the order, the
	// courier accounting and, for forced cancellations, the client block
	// commit together.
	CancelUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		ClientRepoFactory
	}

	// CancelUoWFactory creates new cancellation unit of work instances.
	CancelUoWFactory interface {
		Create() CancelUoW
	}

	// RecordUoW manages the separate transaction writing the cancellation
	// accounting record after the cancellation itself committed.
	RecordUoW interface {
		TxManager
		CancellationRepoFactory
	}

	// RecordUoWFactory creates new record unit of work instances.
	RecordUoWFactory interface {
		Create() RecordUoW
	}
)
