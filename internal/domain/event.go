package domain

import (
	"context"
	"time"
)

// EventType identifies a question lifecycle event
type EventType string

const (
	EventQuestionCreated EventType = "question_created"
	EventQuestionDeleted EventType = "question_deleted"
)

// Event is broadcast to live feed subscribers whenever the question set changes
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	QuestionID int       `json:"question_id"`
	Question   *Question `json:"question,omitempty"`
	At         time.Time `json:"at"`
}

// EventPublisher delivers events to subscribers
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
