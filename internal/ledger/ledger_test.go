package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/repository"
)

// memRepo is an in-memory InventoryRepository with the same atomicity
// contract as the postgres implementation, minus real transactions: the test
// fake applies writes directly and relies on single-goroutine use.
type memRepo struct {
	items     map[string]*domain.InventoryItem
	movements []domain.InventoryMovement
}

func newMemRepo(items ...*domain.InventoryItem) *memRepo {
	r := &memRepo{items: make(map[string]*domain.InventoryItem)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *memRepo) GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *memRepo) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	var out []domain.InventoryItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *memRepo) ListMovements(ctx context.Context, itemID string, limit int) ([]domain.InventoryMovement, error) {
	var out []domain.InventoryMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].ItemID != itemID {
			continue
		}
		out = append(out, r.movements[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memRepo) Atomic(ctx context.Context, fn func(tx repository.InventoryTx) error) error {
	return fn(&memTx{repo: r})
}

type memTx struct {
	repo *memRepo
}

func (t *memTx) GetItemForUpdate(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	return t.repo.GetItem(ctx, itemID)
}

func (t *memTx) UpdateItemStock(ctx context.Context, itemID string, stock, costAvg, lastPrice, expectedStock float64) error {
	item, ok := t.repo.items[itemID]
	if !ok {
		return domain.ErrItemNotFound
	}
	if item.StockCurrent != expectedStock {
		return domain.ErrConflict
	}
	item.StockCurrent = stock
	item.CostAvg = costAvg
	item.LastPrice = lastPrice
	return nil
}

func (t *memTx) InsertBatch(ctx context.Context, batch *domain.InventoryBatch) error {
	item := t.repo.items[batch.ItemID]
	item.Batches = append(item.Batches, *batch)
	return nil
}

func (t *memTx) UpdateBatchQuantity(ctx context.Context, batchID string, quantity float64) error {
	for _, item := range t.repo.items {
		for i := range item.Batches {
			if item.Batches[i].ID == batchID {
				item.Batches[i].QuantityCurrent = quantity
				return nil
			}
		}
	}
	return domain.ErrItemNotFound
}

func (t *memTx) InsertMovement(ctx context.Context, movement *domain.InventoryMovement) error {
	t.repo.movements = append(t.repo.movements, *movement)
	return nil
}

func TestApplyMovementValidation(t *testing.T) {
	repo := newMemRepo(flourItem(10, 1))
	l := New(repo, DefaultPolicy())
	ctx := context.Background()

	_, err := l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: "evaporation", Quantity: 1, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementReceipt, Quantity: 1, Reason: "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReason)

	_, err = l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementIssue, Quantity: 0, Reason: "waste",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementAdjustment, Quantity: -1, Reason: "recount",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// Zero is a legitimate recount.
	m, err := l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementAdjustment, Quantity: 0, Reason: "recount",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.StockAfter)
}

func TestApplyMovementReceiptIssueRoundTrip(t *testing.T) {
	repo := newMemRepo(flourItem(0, 0))
	l := New(repo, DefaultPolicy())
	ctx := context.Background()

	_, err := l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementReceipt, Quantity: 100, UnitPrice: 0.80, Reason: "delivery",
	})
	require.NoError(t, err)

	_, err = l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementReceipt, Quantity: 50, UnitPrice: 1.00, Reason: "delivery",
	})
	require.NoError(t, err)

	m, err := l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementIssue, Quantity: 120, Reason: "production",
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, m.StockAfter)

	item, err := repo.GetItem(ctx, "flour")
	require.NoError(t, err)
	assert.Equal(t, 30.0, item.StockCurrent)
	assert.InDelta(t, 0.8667, item.CostAvg, 1e-4)
	assert.Equal(t, 1.00, item.LastPrice)

	// Exactly one kardex entry per accepted movement.
	kardex, err := l.Kardex(ctx, "flour", 0)
	require.NoError(t, err)
	assert.Len(t, kardex, 3)
}

func TestApplyMovementIssueDrainsBatchesByExpiry(t *testing.T) {
	item := flourItem(0, 0)
	item.Category = domain.CategoryPerishable
	repo := newMemRepo(item)
	l := New(repo, DefaultPolicy())
	ctx := context.Background()

	soon := time.Now().AddDate(0, 0, 2)
	late := time.Now().AddDate(0, 0, 20)

	_, err := l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementReceipt, Quantity: 10, UnitPrice: 1, Reason: "delivery", ExpiryDate: &late,
	})
	require.NoError(t, err)
	_, err = l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementReceipt, Quantity: 10, UnitPrice: 1, Reason: "delivery", ExpiryDate: &soon,
	})
	require.NoError(t, err)

	_, err = l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementIssue, Quantity: 12, Reason: "production",
	})
	require.NoError(t, err)

	stored, err := repo.GetItem(ctx, "flour")
	require.NoError(t, err)
	require.Len(t, stored.Batches, 2)

	// The soon-expiring batch empties first even though it arrived second.
	for _, b := range stored.Batches {
		if b.ExpiryDate.Equal(soon) {
			assert.Equal(t, 0.0, b.QuantityCurrent)
		} else {
			assert.Equal(t, 8.0, b.QuantityCurrent)
		}
	}
	assert.Equal(t, 8.0, stored.StockCurrent)
}

func TestApplyMovementStockNeverNegative(t *testing.T) {
	repo := newMemRepo(flourItem(5, 1))
	l := New(repo, DefaultPolicy())
	ctx := context.Background()

	_, err := l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementIssue, Quantity: 6, Reason: "production",
	})
	require.Error(t, err)
	assert.True(t, domain.IsInsufficientStock(err))

	item, err := repo.GetItem(ctx, "flour")
	require.NoError(t, err)
	assert.Equal(t, 5.0, item.StockCurrent)

	// A rejected movement leaves no kardex trace.
	kardex, err := l.Kardex(ctx, "flour", 0)
	require.NoError(t, err)
	assert.Empty(t, kardex)
}

func TestReplayDetectsConsistentHistory(t *testing.T) {
	repo := newMemRepo(flourItem(0, 0))
	l := New(repo, DefaultPolicy())
	ctx := context.Background()

	moves := []domain.MovementRequest{
		{ItemID: "flour", Kind: domain.MovementReceipt, Quantity: 100, UnitPrice: 0.8, Reason: "delivery"},
		{ItemID: "flour", Kind: domain.MovementIssue, Quantity: 30, Reason: "production"},
		{ItemID: "flour", Kind: domain.MovementAdjustment, Quantity: 68, Reason: "recount"},
		{ItemID: "flour", Kind: domain.MovementIssue, Quantity: 18, Reason: "production"},
	}
	for _, req := range moves {
		_, err := l.ApplyMovement(ctx, req)
		require.NoError(t, err)
	}

	report, err := l.Replay(ctx, "flour")
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Empty(t, report.Drifts)
	assert.Equal(t, 4, report.Movements)
	assert.Equal(t, 50.0, report.FinalStock)
	assert.Equal(t, 50.0, report.StockCurrent)
}

func TestReplayFlagsDrift(t *testing.T) {
	repo := newMemRepo(flourItem(0, 0))
	l := New(repo, DefaultPolicy())
	ctx := context.Background()

	_, err := l.ApplyMovement(ctx, domain.MovementRequest{
		ItemID: "flour", Kind: domain.MovementReceipt, Quantity: 40, UnitPrice: 1, Reason: "delivery",
	})
	require.NoError(t, err)

	// Simulate a write that bypassed the ledger.
	repo.items["flour"].StockCurrent = 33

	report, err := l.Replay(ctx, "flour")
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.Equal(t, 40.0, report.FinalStock)
	assert.Equal(t, 33.0, report.StockCurrent)
}
