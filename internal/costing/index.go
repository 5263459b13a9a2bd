// Package costing computes recipe costs, production feasibility and
// consolidated material needs from a ledger snapshot. Every function here is
// pure: identical inputs give identical results and nothing ever touches
// storage.
package costing

import "github.com/quesadillascandy/candy-backend/internal/domain"

// StockIndex is a point-in-time view of the inventory used for lookups by
// item id. Missing items resolve to zero cost and zero stock so a stale
// recipe reference degrades instead of failing.
type StockIndex struct {
	items map[string]domain.InventoryItem
}

// NewStockIndex builds an index from a snapshot of inventory items.
func NewStockIndex(items []domain.InventoryItem) *StockIndex {
	idx := &StockIndex{items: make(map[string]domain.InventoryItem, len(items))}
	for _, item := range items {
		idx.items[item.ID] = item
	}
	return idx
}

// CostOf returns the item's current weighted-average unit cost, or 0 for an
// unknown item.
func (idx *StockIndex) CostOf(itemID string) float64 {
	return idx.items[itemID].CostAvg
}

// StockOf returns the item's current stock, or 0 for an unknown item.
func (idx *StockIndex) StockOf(itemID string) float64 {
	return idx.items[itemID].StockCurrent
}

// Lookup returns the full item and whether it exists in the snapshot.
func (idx *StockIndex) Lookup(itemID string) (domain.InventoryItem, bool) {
	item, ok := idx.items[itemID]
	return item, ok
}
