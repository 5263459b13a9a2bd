package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuantity rejects a non-positive quantity on a movement or
	// simulation call.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidReason rejects a movement without a reason text; every kardex
	// entry must say why it happened.
	ErrInvalidReason = errors.New("movement reason is required")

	// ErrItemNotFound is a hard error on mutation paths; pure computations
	// treat a missing item as zero cost and zero stock instead.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrInvalidRecipe flags a zero/negative yield or malformed ingredient
	// data before it can turn into Inf/NaN arithmetic.
	ErrInvalidRecipe = errors.New("invalid recipe")

	// ErrAdjustmentBatched rejects an adjustment on a batch-tracked item
	// unless the caller explicitly forces it, because adjustments do not
	// reconcile batch quantities.
	ErrAdjustmentBatched = errors.New("adjustment on batch-tracked item requires force_adjust")

	// ErrConflict signals that a conditional stock update lost a race with a
	// concurrent writer. Callers decide whether to retry.
	ErrConflict = errors.New("stock changed concurrently")

	// ErrOrderNotFound is returned for an unknown order reference.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition rejects an order status change the workflow does
	// not allow.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// InsufficientStockError carries the numbers the operator needs to correct an
// issue request without guessing.
type InsufficientStockError struct {
	ItemID    string
	Available float64
	Requested float64
	Unit      string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %g, available %g %s", e.Requested, e.Available, e.Unit)
}

// IsInsufficientStock reports whether err is an insufficient-stock rejection.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

// StorageError wraps a driver/transport failure crossing the storage boundary.
// The core performs no retries itself; callers apply backoff externally.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// WrapStorage annotates err as a storage failure, preserving nil.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
