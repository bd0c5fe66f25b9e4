package models

import (
	"encoding/json"
	"time"
)

const (
	EventExplorationLoaded    = "lesson.exploration.loaded"
	EventStateTransition      = "lesson.exploration.state.changed"
	EventExplorationCompleted = "lesson.exploration.completed"
)

// EventSource identifies the block instance and learner an event originates from
type EventSource struct {
	BlockID int  `json:"block_id"`
	UserID  *int `json:"user_id,omitempty"`
}

// EventEnvelope is the message published to the event bus
type EventEnvelope struct {
	EventType string         `json:"event_type"`
	BlockID   int            `json:"block_id"`
	UserID    *int           `json:"user_id,omitempty"`
	Event     map[string]any `json:"event"`
	Time      time.Time      `json:"time"`
}

// NewEventEnvelope wraps a payload for publishing
func NewEventEnvelope(source EventSource, eventType string, payload map[string]any, at time.Time) EventEnvelope {
	return EventEnvelope{
		EventType: eventType,
		BlockID:   source.BlockID,
		UserID:    source.UserID,
		Event:     payload,
		Time:      at.UTC(),
	}
}

// ExplorationEvent is an event log entry stored by the analytics worker
type ExplorationEvent struct {
	ID        int             `json:"id"`
	BlockID   int             `json:"blockId"`
	UserID    *int            `json:"userId,omitempty"`
	EventType string          `json:"eventType"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}
