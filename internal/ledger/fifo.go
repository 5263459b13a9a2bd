package ledger

import (
	"sort"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

// batchDraw records how much one issue takes from one batch.
type batchDraw struct {
	BatchID   string
	Taken     float64
	Remaining float64
}

// depleteByExpiry allocates an issue across batches soonest-expiry-first
// (FIFO-by-expiry, not receipt order). Empty batches are skipped. If the
// batches hold less than the requested quantity the allocation is best-effort:
// stock_current is the authority and batch totals may have drifted.
func depleteByExpiry(batches []domain.InventoryBatch, quantity float64) []batchDraw {
	if len(batches) == 0 || quantity <= 0 {
		return nil
	}

	sorted := make([]domain.InventoryBatch, len(batches))
	copy(sorted, batches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ExpiryDate.Equal(sorted[j].ExpiryDate) {
			return sorted[i].ExpiryDate.Before(sorted[j].ExpiryDate)
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	remaining := quantity
	var draws []batchDraw
	for _, batch := range sorted {
		if remaining <= 0 {
			break
		}
		if batch.QuantityCurrent <= 0 {
			continue
		}

		take := batch.QuantityCurrent
		if remaining < take {
			take = remaining
		}

		draws = append(draws, batchDraw{
			BatchID:   batch.ID,
			Taken:     take,
			Remaining: batch.QuantityCurrent - take,
		})
		remaining -= take
	}

	return draws
}
