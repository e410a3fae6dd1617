package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"go.uber.org/zap"
)

// publisher is the subset of *redis.Client used for publishing
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher publishes events to a Redis channel
type RedisPublisher struct {
	redis   publisher
	channel string
}

// NewRedisPublisher creates a publisher writing to Channel
func NewRedisPublisher(client publisher) *RedisPublisher {
	return &RedisPublisher{redis: client, channel: Channel}
}

// Publish implements domain.EventPublisher
func (p *RedisPublisher) Publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.redis.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Relay forwards events from the Redis channel to the local hub
type Relay struct {
	redis  *redis.Client
	hub    Broadcaster
	logger *zap.Logger
}

// NewRelay creates a relay
func NewRelay(client *redis.Client, hub Broadcaster, logger *zap.Logger) *Relay {
	return &Relay{redis: client, hub: hub, logger: logger}
}

// Run subscribes to Channel and relays until ctx is cancelled
func (r *Relay) Run(ctx context.Context) error {
	sub := r.redis.Subscribe(ctx, Channel)
	defer sub.Close()

	// Wait for the subscription to be confirmed
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", Channel, err)
	}

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.forward(msg.Payload)
		}
	}
}

func (r *Relay) forward(payload string) {
	var event domain.Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		r.logger.Warn("dropping malformed event", zap.Error(err))
		return
	}
	if err := deliver(r.hub, event); err != nil {
		r.logger.Warn("failed to relay event", zap.String("event_id", event.ID), zap.Error(err))
	}
}
