package repository

import (
	"context"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

// InventoryTx is the set of writes available inside one atomic movement
// application. Either every write in the transaction becomes visible or none
// does; partial application of "update item + write movement + update batches"
// is a correctness bug, not an acceptable outcome.
type InventoryTx interface {
	// GetItemForUpdate loads the item with its batches, locking the row for
	// the duration of the transaction.
	GetItemForUpdate(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// UpdateItemStock replaces the three ledger-owned fields. The update is
	// conditional on the stock value the caller read; domain.ErrConflict is
	// returned when a concurrent writer got there first.
	UpdateItemStock(ctx context.Context, itemID string, stock, costAvg, lastPrice, expectedStock float64) error

	InsertBatch(ctx context.Context, batch *domain.InventoryBatch) error
	UpdateBatchQuantity(ctx context.Context, batchID string, quantity float64) error

	// InsertMovement appends one kardex entry. Movements are never updated
	// or deleted.
	InsertMovement(ctx context.Context, movement *domain.InventoryMovement) error
}

// InventoryRepository is the storage boundary for items, batches and the
// movement ledger.
type InventoryRepository interface {
	GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
	// ListMovements returns the item's kardex entries, newest first. A
	// non-positive limit returns the full history.
	ListMovements(ctx context.Context, itemID string, limit int) ([]domain.InventoryMovement, error)

	// Atomic runs fn inside a single transaction.
	Atomic(ctx context.Context, fn func(tx InventoryTx) error) error
}
