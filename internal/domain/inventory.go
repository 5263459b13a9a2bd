package domain

import "time"

// ItemType classifies what an inventory item is used for.
type ItemType string

const (
	ItemTypeRawMaterial ItemType = "raw_material"
	ItemTypeSupply      ItemType = "supply"
)

// ItemCategory is the perishability class of an item.
type ItemCategory string

const (
	CategoryPerishable    ItemCategory = "perishable"
	CategoryNonPerishable ItemCategory = "non_perishable"
	CategoryAsset         ItemCategory = "asset"
)

// InventoryItem is a trackable stock keeping unit. Its three mutable fields
// (stock_current, cost_avg, last_price) are owned by the stock ledger and
// change only through movement application.
type InventoryItem struct {
	ID           string       `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Type         ItemType     `json:"type" db:"type"`
	Category     ItemCategory `json:"category" db:"category"`
	Unit         string       `json:"unit" db:"unit"`
	StockCurrent float64      `json:"stock_current" db:"stock_current"`
	StockMin     float64      `json:"stock_min" db:"stock_min"`
	StockMax     float64      `json:"stock_max" db:"stock_max"`
	CostAvg      float64      `json:"cost_avg" db:"cost_avg"`
	LastPrice    float64      `json:"last_price" db:"last_price"`
	Location     string       `json:"location,omitempty" db:"location"`
	Active       bool         `json:"active" db:"active"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`

	Batches []InventoryBatch `json:"batches,omitempty" db:"-"`
}

// IsPerishable reports whether receipts for this item are batch-tracked by default.
func (i *InventoryItem) IsPerishable() bool {
	return i.Category == CategoryPerishable
}

// BatchStock sums the remaining quantity across the item's batches.
func (i *InventoryItem) BatchStock() float64 {
	var total float64
	for _, b := range i.Batches {
		total += b.QuantityCurrent
	}
	return total
}

// InventoryBatch is a traceable lot of an item with its own expiry and receipt
// cost. A depleted batch stays on record with QuantityCurrent == 0.
type InventoryBatch struct {
	ID              string    `json:"id" db:"id"`
	ItemID          string    `json:"item_id" db:"item_id"`
	BatchNumber     string    `json:"batch_number" db:"batch_number"`
	QuantityInitial float64   `json:"quantity_initial" db:"quantity_initial"`
	QuantityCurrent float64   `json:"quantity_current" db:"quantity_current"`
	ExpiryDate      time.Time `json:"expiry_date" db:"expiry_date"`
	CostUnit        float64   `json:"cost_unit" db:"cost_unit"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
