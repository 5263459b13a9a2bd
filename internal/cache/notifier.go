package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/quesadillascandy/candy-backend/internal/config"
)

const changesChannel = "inventory:changes"

// ChangeEvent announces a write so derived views (alerts, dashboards) can
// recompute. Consumers that miss events fall back to the periodic recompute;
// the notification is an optimization, not a correctness requirement.
type ChangeEvent struct {
	Table  string `json:"table"`
	ItemID string `json:"item_id,omitempty"`
}

// ChangeNotifier publishes and subscribes to inventory change events.
type ChangeNotifier interface {
	Publish(ctx context.Context, event ChangeEvent)
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

type redisChangeNotifier struct {
	client *redis.Client
}

type noopChangeNotifier struct{}

// NewChangeNotifier returns a redis pub/sub notifier, or a noop one when
// caching infrastructure is disabled.
func NewChangeNotifier(cfg config.CacheConfig) (ChangeNotifier, error) {
	if !cfg.Enabled {
		return &noopChangeNotifier{}, nil
	}

	client, _, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisChangeNotifier{client: client}, nil
}

// Publish is best-effort: a failed notification only delays recomputation
// until the next scheduled pass, so errors are logged and swallowed.
func (n *redisChangeNotifier) Publish(ctx context.Context, event ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Warn().Err(err).Msg("encode change event")
		return
	}

	if err := n.client.Publish(ctx, changesChannel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("table", event.Table).Msg("publish change event")
	}
}

func (n *redisChangeNotifier) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	sub := n.client.Subscribe(ctx, changesChannel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, err
	}

	out := make(chan ChangeEvent)
	go func() {
		defer close(out)
		defer sub.Close()
		for msg := range sub.Channel() {
			var event ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Msg("decode change event")
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// NewNoopChangeNotifier returns a notifier that drops all events.
func NewNoopChangeNotifier() ChangeNotifier {
	return &noopChangeNotifier{}
}

func (n *noopChangeNotifier) Publish(ctx context.Context, event ChangeEvent) {}

func (n *noopChangeNotifier) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	ch := make(chan ChangeEvent)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}
