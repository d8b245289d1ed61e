package domain

import (
	"context"
	"time"
)

// DomainEvent is implemented by all slotting domain events.
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// EventPublisher publishes domain events to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	PublishAll(ctx context.Context, events []DomainEvent) error
}

// SlottingCompletedEvent is emitted when a slotting run finishes.
type SlottingCompletedEvent struct {
	RunID       string    `json:"runId"`
	SourceName  string    `json:"sourceName,omitempty"`
	TotalSKUs   int       `json:"totalSkus"`
	TotalPlaced int       `json:"totalPlaced"`
	TraysUsed   int       `json:"traysUsed"`
	Warnings    int       `json:"warnings"`
	CompletedAt time.Time `json:"completedAt"`
}

func (e *SlottingCompletedEvent) EventType() string     { return "slotting.run.completed" }
func (e *SlottingCompletedEvent) OccurredAt() time.Time { return e.CompletedAt }

// SlottingRunDeletedEvent is emitted when a stored run is removed.
type SlottingRunDeletedEvent struct {
	RunID     string    `json:"runId"`
	DeletedAt time.Time `json:"deletedAt"`
}

func (e *SlottingRunDeletedEvent) EventType() string     { return "slotting.run.deleted" }
func (e *SlottingRunDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
