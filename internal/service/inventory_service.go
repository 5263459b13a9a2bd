package service

import (
	"context"
	"time"

	"github.com/quesadillascandy/candy-backend/internal/alerts"
	"github.com/quesadillascandy/candy-backend/internal/cache"
	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/ledger"
	"github.com/quesadillascandy/candy-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// InventoryService fronts the stock ledger and the alert generator. Every
// stock mutation goes through the ledger; reads may be served from cache.
type InventoryService struct {
	repo      repository.InventoryRepository
	ledger    *ledger.Ledger
	generator *alerts.Generator
	cache     cache.AlertCache
	notifier  cache.ChangeNotifier
}

func NewInventoryService(
	repo repository.InventoryRepository,
	ldg *ledger.Ledger,
	generator *alerts.Generator,
	cacheImpl cache.AlertCache,
	notifier cache.ChangeNotifier,
) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAlertCache()
	}
	if notifier == nil {
		notifier = cache.NewNoopChangeNotifier()
	}
	return &InventoryService{
		repo:      repo,
		ledger:    ldg,
		generator: generator,
		cache:     cacheImpl,
		notifier:  notifier,
	}
}

func (s *InventoryService) GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	return s.repo.GetItem(ctx, itemID)
}

func (s *InventoryService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.repo.ListItems(ctx)
}

// ApplyMovement records one stock movement and invalidates derived state.
func (s *InventoryService) ApplyMovement(ctx context.Context, req domain.MovementRequest) (*domain.InventoryMovement, error) {
	movement, err := s.ledger.ApplyMovement(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory: alert cache invalidation failed")
	}
	s.notifier.Publish(ctx, cache.ChangeEvent{Table: "inventory_items", ItemID: req.ItemID})

	return movement, nil
}

func (s *InventoryService) Kardex(ctx context.Context, itemID string, limit int) ([]domain.InventoryMovement, error) {
	return s.ledger.Kardex(ctx, itemID, limit)
}

// VerifyKardex replays an item's movement history against its stored stock.
func (s *InventoryService) VerifyKardex(ctx context.Context, itemID string) (*ledger.ReplayReport, error) {
	return s.ledger.Replay(ctx, itemID)
}

// Alerts returns the current alert set, serving from cache when possible.
func (s *InventoryService) Alerts(ctx context.Context) ([]domain.InventoryAlert, error) {
	if cached, ok, err := s.cache.Get(ctx); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: alert cache get failed")
	}

	return s.RecomputeAlerts(ctx)
}

// RecomputeAlerts derives alerts from live inventory state and refreshes the
// cache. The scheduler calls this on a fixed cadence so the cache stays warm.
func (s *InventoryService) RecomputeAlerts(ctx context.Context) ([]domain.InventoryAlert, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	derived := s.generator.Derive(items, time.Now())

	if err := s.cache.Set(ctx, derived); err != nil {
		log.Warn().Err(err).Msg("inventory: alert cache set failed")
	}

	return derived, nil
}
