package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quesadillascandy/candy-backend/internal/alerts"
	"github.com/quesadillascandy/candy-backend/internal/cache"
	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/ledger"
	"github.com/quesadillascandy/candy-backend/internal/repository"
)

type stubRepo struct {
	items []domain.InventoryItem
}

func (r *stubRepo) GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	for i := range r.items {
		if r.items[i].ID == itemID {
			return &r.items[i], nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (r *stubRepo) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return r.items, nil
}

func (r *stubRepo) ListMovements(ctx context.Context, itemID string, limit int) ([]domain.InventoryMovement, error) {
	return nil, nil
}

func (r *stubRepo) Atomic(ctx context.Context, fn func(tx repository.InventoryTx) error) error {
	return fn(&stubTx{repo: r})
}

type stubTx struct {
	repo *stubRepo
}

func (t *stubTx) GetItemForUpdate(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	return t.repo.GetItem(ctx, itemID)
}

func (t *stubTx) UpdateItemStock(ctx context.Context, itemID string, stock, costAvg, lastPrice, expectedStock float64) error {
	item, err := t.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	item.StockCurrent = stock
	item.CostAvg = costAvg
	item.LastPrice = lastPrice
	return nil
}

func (t *stubTx) InsertBatch(ctx context.Context, batch *domain.InventoryBatch) error  { return nil }
func (t *stubTx) UpdateBatchQuantity(ctx context.Context, id string, qty float64) error { return nil }
func (t *stubTx) InsertMovement(ctx context.Context, m *domain.InventoryMovement) error { return nil }

type recordingCache struct {
	stored  []domain.InventoryAlert
	hit     bool
	getErr  error
	gets    int
	sets    int
	invalid int
}

func (c *recordingCache) Get(ctx context.Context) ([]domain.InventoryAlert, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.stored, c.hit, nil
}

func (c *recordingCache) Set(ctx context.Context, alerts []domain.InventoryAlert) error {
	c.sets++
	c.stored = alerts
	c.hit = true
	return nil
}

func (c *recordingCache) Invalidate(ctx context.Context) error {
	c.invalid++
	c.stored = nil
	c.hit = false
	return nil
}

type recordingNotifier struct {
	events []cache.ChangeEvent
}

func (n *recordingNotifier) Publish(ctx context.Context, event cache.ChangeEvent) {
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Subscribe(ctx context.Context) (<-chan cache.ChangeEvent, error) {
	return nil, nil
}

func lowStockRepo() *stubRepo {
	return &stubRepo{items: []domain.InventoryItem{
		{
			ID: "flour-000", Name: "Flour", Type: domain.ItemTypeRawMaterial,
			Category: domain.CategoryNonPerishable, Unit: "kg",
			StockCurrent: 3, StockMin: 10, CostAvg: 0.80, LastPrice: 0.80, Active: true,
		},
	}}
}

func newTestService(repo *stubRepo, c cache.AlertCache, n cache.ChangeNotifier) *InventoryService {
	ldg := ledger.New(repo, ledger.Policy{DefaultExpiryDays: 7})
	gen := alerts.NewGenerator(alerts.DefaultConfig())
	return NewInventoryService(repo, ldg, gen, c, n)
}

func TestAlertsServedFromCache(t *testing.T) {
	cached := []domain.InventoryAlert{{ID: "crit-flour-000", ItemID: "flour-000"}}
	c := &recordingCache{stored: cached, hit: true}
	svc := newTestService(lowStockRepo(), c, nil)

	got, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	assert.Equal(t, 0, c.sets, "a cache hit must not trigger a recompute")
}

func TestAlertsRecomputedOnMiss(t *testing.T) {
	c := &recordingCache{}
	svc := newTestService(lowStockRepo(), c, nil)

	got, err := svc.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "crit-flour-000", got[0].ID)
	assert.Equal(t, 1, c.sets, "a miss populates the cache")
}

func TestAlertsFallThroughOnCacheError(t *testing.T) {
	c := &recordingCache{getErr: errors.New("redis down")}
	svc := newTestService(lowStockRepo(), c, nil)

	got, err := svc.Alerts(context.Background())
	require.NoError(t, err, "cache failures must not fail the read")
	require.Len(t, got, 1)
	assert.Equal(t, "crit-flour-000", got[0].ID)
}

func TestApplyMovementInvalidatesAndNotifies(t *testing.T) {
	c := &recordingCache{stored: []domain.InventoryAlert{{ID: "stale"}}, hit: true}
	n := &recordingNotifier{}
	svc := newTestService(lowStockRepo(), c, n)

	_, err := svc.ApplyMovement(context.Background(), domain.MovementRequest{
		ItemID: "flour-000", Kind: domain.MovementReceipt,
		Quantity: 25, UnitPrice: 0.90, Reason: "weekly restock",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, c.invalid)
	require.Len(t, n.events, 1)
	assert.Equal(t, "inventory_items", n.events[0].Table)
	assert.Equal(t, "flour-000", n.events[0].ItemID)
}

func TestApplyMovementRejectionLeavesCacheAlone(t *testing.T) {
	c := &recordingCache{stored: []domain.InventoryAlert{{ID: "current"}}, hit: true}
	n := &recordingNotifier{}
	svc := newTestService(lowStockRepo(), c, n)

	_, err := svc.ApplyMovement(context.Background(), domain.MovementRequest{
		ItemID: "flour-000", Kind: domain.MovementIssue,
		Quantity: 500, Reason: "production run",
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, c.invalid)
	assert.Empty(t, n.events)
}
