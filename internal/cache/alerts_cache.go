package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quesadillascandy/candy-backend/internal/config"
	"github.com/quesadillascandy/candy-backend/internal/domain"
)

const alertsKey = "inventory:alerts"

// AlertCache holds the latest derived alert set so dashboard polls do not
// rebuild it from a full inventory read every time.
type AlertCache interface {
	Get(ctx context.Context) ([]domain.InventoryAlert, bool, error)
	Set(ctx context.Context, alerts []domain.InventoryAlert) error
	Invalidate(ctx context.Context) error
}

type redisAlertCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAlertCache struct{}

// NewAlertCache returns a redis-backed cache, or a noop one when caching is
// disabled.
func NewAlertCache(cfg config.CacheConfig) (AlertCache, error) {
	if !cfg.Enabled {
		return &noopAlertCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAlertCache{client: client, ttl: ttl}, nil
}

// NewNoopAlertCache is the explicit no-cache fallback.
func NewNoopAlertCache() AlertCache {
	return &noopAlertCache{}
}

func (c *redisAlertCache) Get(ctx context.Context) ([]domain.InventoryAlert, bool, error) {
	payload, err := c.client.Get(ctx, alertsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var alerts []domain.InventoryAlert
	if err := json.Unmarshal(payload, &alerts); err != nil {
		return nil, false, fmt.Errorf("decode alert cache: %w", err)
	}

	return alerts, true, nil
}

func (c *redisAlertCache) Set(ctx context.Context, alerts []domain.InventoryAlert) error {
	payload, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("encode alert cache: %w", err)
	}

	if err := c.client.Set(ctx, alertsKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisAlertCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, alertsKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (c *noopAlertCache) Get(ctx context.Context) ([]domain.InventoryAlert, bool, error) {
	return nil, false, nil
}

func (c *noopAlertCache) Set(ctx context.Context, alerts []domain.InventoryAlert) error {
	return nil
}

func (c *noopAlertCache) Invalidate(ctx context.Context) error {
	return nil
}
