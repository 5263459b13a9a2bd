package ledger

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

const replayTolerance = 1e-6

// Drift describes one point where the recorded running total disagrees with
// the replayed one.
type Drift struct {
	MovementID string  `json:"movement_id"`
	Expected   float64 `json:"expected"`
	Recorded   float64 `json:"recorded"`
}

// ReplayReport is the outcome of replaying an item's full kardex.
type ReplayReport struct {
	ItemID     string  `json:"item_id"`
	Movements  int     `json:"movements"`
	FinalStock float64 `json:"final_stock"`
	// StockCurrent is the item's stored stock for comparison against FinalStock.
	StockCurrent float64 `json:"stock_current"`
	Consistent   bool    `json:"consistent"`
	Drifts       []Drift `json:"drifts,omitempty"`
}

// Replay rebuilds an item's stock from its movement history and compares each
// step against the recorded stock_after. The kardex is the source of truth;
// a drift means some write bypassed the ledger.
func (l *Ledger) Replay(ctx context.Context, itemID string) (*ReplayReport, error) {
	item, err := l.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	movements, err := l.repo.ListMovements(ctx, itemID, 0)
	if err != nil {
		return nil, err
	}

	// ListMovements returns newest first; replay runs oldest first.
	sort.SliceStable(movements, func(a, b int) bool {
		return movements[a].CreatedAt.Before(movements[b].CreatedAt)
	})

	report := &ReplayReport{
		ItemID:       itemID,
		Movements:    len(movements),
		StockCurrent: item.StockCurrent,
		Consistent:   true,
	}

	running := 0.0
	for _, m := range movements {
		switch m.Kind {
		case domain.MovementReceipt:
			running += m.Quantity
		case domain.MovementIssue:
			running -= m.Quantity
		case domain.MovementAdjustment:
			running = m.Quantity
		default:
			return nil, fmt.Errorf("replay: unknown movement kind %q", m.Kind)
		}

		if math.Abs(running-m.StockAfter) > replayTolerance {
			report.Consistent = false
			report.Drifts = append(report.Drifts, Drift{
				MovementID: m.ID,
				Expected:   running,
				Recorded:   m.StockAfter,
			})
			// Resync so one drift does not cascade into every later step.
			running = m.StockAfter
		}
	}

	report.FinalStock = running
	if math.Abs(running-item.StockCurrent) > replayTolerance {
		report.Consistent = false
	}

	return report, nil
}
