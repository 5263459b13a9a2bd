package domain

import "time"

// MovementKind is the closed set of ledger operations.
type MovementKind string

const (
	MovementReceipt    MovementKind = "receipt"
	MovementIssue      MovementKind = "issue"
	MovementAdjustment MovementKind = "adjustment"
)

// Valid reports whether k is one of the three supported kinds.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementReceipt, MovementIssue, MovementAdjustment:
		return true
	}
	return false
}

// InventoryMovement is one immutable kardex entry. StockAfter records the
// item's stock immediately after this movement was applied, so replaying the
// kardex reproduces the running total.
type InventoryMovement struct {
	ID        string       `json:"id" db:"id"`
	ItemID    string       `json:"item_id" db:"item_id"`
	Kind      MovementKind `json:"kind" db:"kind"`
	Quantity  float64      `json:"quantity" db:"quantity"`
	UnitPrice float64      `json:"unit_price" db:"unit_price"`
	TotalCost float64      `json:"total_cost" db:"total_cost"`
	Reason    string       `json:"reason" db:"reason"`
	UserID    string       `json:"user_id" db:"user_id"`
	UserName  string       `json:"user_name" db:"user_name"`
	BatchID   *string      `json:"batch_id,omitempty" db:"batch_id"`
	StockAfter float64     `json:"stock_after" db:"stock_after"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// MovementRequest carries everything a caller supplies to register a movement.
type MovementRequest struct {
	ItemID   string       `json:"item_id"`
	Kind     MovementKind `json:"kind"`
	Quantity float64      `json:"quantity"`
	// UnitPrice applies to receipts; zero falls back to the item's last price.
	UnitPrice float64 `json:"unit_price"`
	Reason    string  `json:"reason"`
	UserID    string  `json:"-"`
	UserName  string  `json:"-"`
	// BatchNumber optionally labels the batch created by a receipt.
	BatchNumber string `json:"batch_number"`
	// ExpiryDate forces batch creation on a receipt even for non-perishables.
	ExpiryDate *time.Time `json:"expiry_date"`
	// ForceAdjust allows an adjustment on a batch-tracked item even though
	// batch quantities are left untouched.
	ForceAdjust bool `json:"force_adjust"`
}
