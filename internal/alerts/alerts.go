// Package alerts derives low-stock and expiry alerts from an inventory
// snapshot. Derivation is a pure function: same snapshot, same alert set,
// nothing cached between calls.
package alerts

import (
	"fmt"
	"math"
	"time"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

// Config tunes the derivation thresholds.
type Config struct {
	// CriticalFactor scales stock_min to the critical threshold.
	CriticalFactor float64
	// ExpiryWindowDays is how far ahead batch expiry warnings look.
	ExpiryWindowDays int
}

// DefaultConfig matches the original dashboard: critical at half the minimum,
// warnings a week before expiry.
func DefaultConfig() Config {
	return Config{CriticalFactor: 0.5, ExpiryWindowDays: 7}
}

// Generator derives alerts with a fixed configuration.
type Generator struct {
	cfg Config
}

func NewGenerator(cfg Config) *Generator {
	if cfg.CriticalFactor <= 0 {
		cfg.CriticalFactor = DefaultConfig().CriticalFactor
	}
	if cfg.ExpiryWindowDays <= 0 {
		cfg.ExpiryWindowDays = DefaultConfig().ExpiryWindowDays
	}
	return &Generator{cfg: cfg}
}

// Derive recomputes the full alert set for a snapshot. Alert IDs are
// deterministic per item/batch and kind, so the result is idempotent.
func (g *Generator) Derive(items []domain.InventoryItem, now time.Time) []domain.InventoryAlert {
	var out []domain.InventoryAlert

	for _, item := range items {
		// Critical supersedes low; never both for one item.
		if item.StockCurrent <= item.StockMin*g.cfg.CriticalFactor {
			out = append(out, domain.InventoryAlert{
				ID:        fmt.Sprintf("crit-%s", item.ID),
				ItemID:    item.ID,
				ItemName:  item.Name,
				Kind:      domain.AlertCriticalStock,
				Severity:  domain.SeverityError,
				Message:   fmt.Sprintf("CRITICAL stock: %g %s (min: %g)", item.StockCurrent, item.Unit, item.StockMin),
				CreatedAt: now,
			})
		} else if item.StockCurrent <= item.StockMin {
			out = append(out, domain.InventoryAlert{
				ID:        fmt.Sprintf("low-%s", item.ID),
				ItemID:    item.ID,
				ItemName:  item.Name,
				Kind:      domain.AlertLowStock,
				Severity:  domain.SeverityWarning,
				Message:   fmt.Sprintf("Low stock: %g %s, reorder soon", item.StockCurrent, item.Unit),
				CreatedAt: now,
			})
		}

		for _, batch := range item.Batches {
			if batch.QuantityCurrent <= 0 {
				continue
			}

			days := daysUntil(now, batch.ExpiryDate)
			if days < 0 {
				d := days
				out = append(out, domain.InventoryAlert{
					ID:            fmt.Sprintf("exp-%s", batch.ID),
					ItemID:        item.ID,
					ItemName:      item.Name,
					BatchID:       batch.ID,
					Kind:          domain.AlertExpired,
					Severity:      domain.SeverityError,
					Message:       fmt.Sprintf("EXPIRED batch %s: %g %s, discard", batch.BatchNumber, batch.QuantityCurrent, item.Unit),
					DaysRemaining: &d,
					CreatedAt:     now,
				})
			} else if days <= g.cfg.ExpiryWindowDays {
				d := days
				out = append(out, domain.InventoryAlert{
					ID:            fmt.Sprintf("expwarn-%s", batch.ID),
					ItemID:        item.ID,
					ItemName:      item.Name,
					BatchID:       batch.ID,
					Kind:          domain.AlertExpiryWarning,
					Severity:      domain.SeverityWarning,
					Message:       fmt.Sprintf("Batch %s expires in %d days", batch.BatchNumber, days),
					DaysRemaining: &d,
					CreatedAt:     now,
				})
			}
		}
	}

	return out
}

// daysUntil is the ceiling of the time left in whole days; negative once the
// expiry has passed.
func daysUntil(now, expiry time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}
