package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RefreshEvent asks every replica to reload its catalog.
type RefreshEvent struct {
	Origin      string    `json:"origin"`
	RequestedAt time.Time `json:"requested_at"`
}

// RefreshBus broadcasts refresh events over a Redis channel.
type RefreshBus struct {
	client  *redis.Client
	channel string
	origin  string
	logger  *zerolog.Logger
}

// NewRefreshBus creates a bus. origin identifies this replica; events it
// published itself are not delivered back to it.
func NewRefreshBus(client *redis.Client, channel, origin string) *RefreshBus {
	logger := log.With().Str("component", "refresh_bus").Str("channel", channel).Logger()
	return &RefreshBus{client: client, channel: channel, origin: origin, logger: &logger}
}

// Publish broadcasts a refresh event.
func (b *RefreshBus) Publish(ctx context.Context) error {
	raw, err := json.Marshal(RefreshEvent{Origin: b.origin, RequestedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish refresh: %w", err)
	}
	return nil
}

// Listen subscribes to the channel and calls onRefresh for every event
// published by another replica. It returns once the subscription is
// confirmed; delivery continues until ctx is cancelled.
func (b *RefreshBus) Listen(ctx context.Context, onRefresh func(RefreshEvent)) error {
	if onRefresh == nil {
		return fmt.Errorf("onRefresh callback required")
	}

	sub := b.client.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var ev RefreshEvent
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					b.logger.Warn().Err(err).Msg("Bad refresh payload")
					continue
				}
				if ev.Origin == b.origin {
					continue
				}
				onRefresh(ev)
			}
		}
	}()

	return nil
}
