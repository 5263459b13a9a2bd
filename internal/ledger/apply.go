package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

// movementPlan is the full effect of one movement, computed before any write.
type movementPlan struct {
	stock     float64
	costAvg   float64
	lastPrice float64

	newBatch *domain.InventoryBatch
	draws    []batchDraw
	movement *domain.InventoryMovement
}

// planMovement computes the new item state, batch effects and kardex entry for
// a validated request. It is pure: all decisions happen here, the caller only
// persists them.
func planMovement(item *domain.InventoryItem, req domain.MovementRequest, policy Policy) (*movementPlan, error) {
	now := time.Now().UTC()

	plan := &movementPlan{
		stock:     item.StockCurrent,
		costAvg:   item.CostAvg,
		lastPrice: item.LastPrice,
	}

	movement := &domain.InventoryMovement{
		ID:        uuid.NewString(),
		ItemID:    item.ID,
		Kind:      req.Kind,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		UserID:    req.UserID,
		UserName:  req.UserName,
		CreatedAt: now,
	}

	switch req.Kind {
	case domain.MovementReceipt:
		price := req.UnitPrice
		if price == 0 {
			price = item.LastPrice
		}

		plan.stock = item.StockCurrent + req.Quantity
		// Weighted average: blend the receipt into the running unit cost.
		// The divide-by-zero guard cannot trigger for a positive receipt but
		// keeps the formula total.
		if plan.stock > 0 {
			plan.costAvg = (item.StockCurrent*item.CostAvg + req.Quantity*price) / plan.stock
		} else {
			plan.costAvg = price
		}
		plan.lastPrice = price

		if req.ExpiryDate != nil || item.IsPerishable() {
			batch := &domain.InventoryBatch{
				ID:              uuid.NewString(),
				ItemID:          item.ID,
				BatchNumber:     req.BatchNumber,
				QuantityInitial: req.Quantity,
				QuantityCurrent: req.Quantity,
				CostUnit:        price,
				CreatedAt:       now,
			}
			if batch.BatchNumber == "" {
				batch.BatchNumber = fmt.Sprintf("L-%s", now.Format("20060102"))
			}
			if req.ExpiryDate != nil {
				batch.ExpiryDate = *req.ExpiryDate
			} else {
				batch.ExpiryDate = now.AddDate(0, 0, policy.DefaultExpiryDays)
			}
			plan.newBatch = batch
			movement.BatchID = &batch.ID
		}

		movement.UnitPrice = price
		movement.TotalCost = req.Quantity * price

	case domain.MovementIssue:
		if req.Quantity > item.StockCurrent {
			return nil, &domain.InsufficientStockError{
				ItemID:    item.ID,
				Available: item.StockCurrent,
				Requested: req.Quantity,
				Unit:      item.Unit,
			}
		}

		plan.stock = item.StockCurrent - req.Quantity
		// Issues never perturb the weighted average or the last price.
		plan.draws = depleteByExpiry(item.Batches, req.Quantity)

		movement.UnitPrice = item.CostAvg
		movement.TotalCost = req.Quantity * item.CostAvg

	case domain.MovementAdjustment:
		if item.BatchStock() > 0 && !req.ForceAdjust {
			return nil, domain.ErrAdjustmentBatched
		}

		// Authoritative recount; valuation is deliberately left alone.
		plan.stock = req.Quantity

		movement.UnitPrice = item.CostAvg
		movement.TotalCost = req.Quantity * item.CostAvg
	}

	movement.StockAfter = plan.stock
	plan.movement = movement

	return plan, nil
}
