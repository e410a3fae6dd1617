// Package events delivers question lifecycle events to live feed clients,
// either straight to the local websocket hub or through Redis pub/sub so that
// every instance behind a load balancer sees every change.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// Channel is the Redis channel carrying question events
const Channel = "trivia:questions"

// Broadcaster is the part of the websocket hub the publishers need
type Broadcaster interface {
	Broadcast(messageType string, payload []byte) error
}

// NewEvent stamps an event with an id and the current time
func NewEvent(eventType domain.EventType, questionID int, question *domain.Question) domain.Event {
	return domain.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		QuestionID: questionID,
		Question:   question,
		At:         time.Now().UTC(),
	}
}

// HubPublisher publishes events to the local hub
type HubPublisher struct {
	hub Broadcaster
}

// NewHubPublisher creates a publisher for single-instance deployments
func NewHubPublisher(hub Broadcaster) *HubPublisher {
	return &HubPublisher{hub: hub}
}

// Publish implements domain.EventPublisher
func (p *HubPublisher) Publish(ctx context.Context, event domain.Event) error {
	return deliver(p.hub, event)
}

func deliver(hub Broadcaster, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := hub.Broadcast(string(event.Type), payload); err != nil {
		return fmt.Errorf("failed to broadcast event: %w", err)
	}
	return nil
}

// Discard drops every event
type Discard struct{}

// Publish implements domain.EventPublisher
func (Discard) Publish(context.Context, domain.Event) error { return nil }
