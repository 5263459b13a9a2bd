// Package ledger owns every mutation of inventory state. Receipts, issues and
// adjustments all go through ApplyMovement, which recomputes valuation and
// records exactly one kardex entry per accepted call.
package ledger

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/repository"
)

// Policy holds the ledger's configurable behavior.
type Policy struct {
	// DefaultExpiryDays is assigned to a perishable receipt that supplies no
	// expiry date. The original system hard-coded 30 days; here it is a knob.
	DefaultExpiryDays int
}

// DefaultPolicy mirrors the historical behavior.
func DefaultPolicy() Policy {
	return Policy{DefaultExpiryDays: 30}
}

// Ledger applies stock movements against the storage boundary.
type Ledger struct {
	repo   repository.InventoryRepository
	policy Policy
}

func New(repo repository.InventoryRepository, policy Policy) *Ledger {
	if policy.DefaultExpiryDays <= 0 {
		policy.DefaultExpiryDays = DefaultPolicy().DefaultExpiryDays
	}
	return &Ledger{repo: repo, policy: policy}
}

// ApplyMovement validates and applies one movement inside a single
// transaction: conditional item update, batch writes and the movement append
// either all commit or none do. The returned movement carries the stock level
// after application.
func (l *Ledger) ApplyMovement(ctx context.Context, req domain.MovementRequest) (*domain.InventoryMovement, error) {
	if !req.Kind.Valid() {
		return nil, domain.ErrInvalidQuantity
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, domain.ErrInvalidReason
	}
	switch req.Kind {
	case domain.MovementReceipt, domain.MovementIssue:
		if req.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	case domain.MovementAdjustment:
		// An adjustment is an authoritative recount; zero is a valid count
		// but negative stock never is.
		if req.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	var applied *domain.InventoryMovement
	err := l.repo.Atomic(ctx, func(tx repository.InventoryTx) error {
		item, err := tx.GetItemForUpdate(ctx, req.ItemID)
		if err != nil {
			return err
		}

		plan, err := planMovement(item, req, l.policy)
		if err != nil {
			return err
		}

		if err := tx.UpdateItemStock(ctx, item.ID, plan.stock, plan.costAvg, plan.lastPrice, item.StockCurrent); err != nil {
			return err
		}
		if plan.newBatch != nil {
			if err := tx.InsertBatch(ctx, plan.newBatch); err != nil {
				return err
			}
		}
		for _, draw := range plan.draws {
			if err := tx.UpdateBatchQuantity(ctx, draw.BatchID, draw.Remaining); err != nil {
				return err
			}
		}
		if err := tx.InsertMovement(ctx, plan.movement); err != nil {
			return err
		}

		applied = plan.movement
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("item_id", applied.ItemID).
		Str("kind", string(applied.Kind)).
		Float64("quantity", applied.Quantity).
		Float64("stock_after", applied.StockAfter).
		Msg("movement applied")

	return applied, nil
}

// Kardex returns the item's movement history, most recent first.
func (l *Ledger) Kardex(ctx context.Context, itemID string, limit int) ([]domain.InventoryMovement, error) {
	if limit <= 0 {
		limit = 100
	}
	return l.repo.ListMovements(ctx, itemID, limit)
}
