// Package kafka publishes slotting domain events as CloudEvents.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/wms-platform/slotting-service/internal/domain"
	"github.com/wms-platform/slotting-service/pkg/cloudevents"
	"github.com/wms-platform/slotting-service/pkg/kafka"
	"github.com/wms-platform/slotting-service/pkg/logging"
	"github.com/wms-platform/slotting-service/pkg/metrics"
)

// EventPublisher implements domain.EventPublisher using Kafka
type EventPublisher struct {
	producer     *kafka.Producer
	eventFactory *cloudevents.EventFactory
	topic        string
	metrics      *metrics.Metrics
	logger       *logging.Logger
}

// NewEventPublisher creates a new Kafka-based event publisher.
// metrics and logger may be nil, e.g. in tests.
func NewEventPublisher(
	producer *kafka.Producer,
	eventFactory *cloudevents.EventFactory,
	topic string,
	m *metrics.Metrics,
	logger *logging.Logger,
) *EventPublisher {
	return &EventPublisher{
		producer:     producer,
		eventFactory: eventFactory,
		topic:        topic,
		metrics:      m,
		logger:       logger,
	}
}

// Publish publishes a single domain event to Kafka
func (p *EventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	ce := p.toCloudEvent(ctx, event)

	start := time.Now()
	err := p.producer.PublishEvent(ctx, p.topic, ce)
	p.observe(ctx, ce.Type, err == nil, time.Since(start))

	if err != nil {
		return fmt.Errorf("failed to publish event to kafka: %w", err)
	}

	return nil
}

// PublishAll publishes multiple domain events to Kafka as one batch
// write.
func (p *EventPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	ces := make([]*cloudevents.WMSCloudEvent, 0, len(events))
	for _, event := range events {
		ces = append(ces, p.toCloudEvent(ctx, event))
	}

	start := time.Now()
	err := p.producer.PublishBatch(ctx, p.topic, ces)
	duration := time.Since(start)
	for _, ce := range ces {
		p.observe(ctx, ce.Type, err == nil, duration)
	}

	if err != nil {
		return fmt.Errorf("failed to publish events to kafka: %w", err)
	}

	return nil
}

func (p *EventPublisher) observe(ctx context.Context, eventType string, success bool, duration time.Duration) {
	if p.metrics != nil {
		p.metrics.RecordKafkaPublish(p.topic, eventType, success, duration)
	}
	if p.logger != nil {
		p.logger.KafkaPublish(ctx, p.topic, eventType, success, duration)
	}
}

// toCloudEvent maps known domain events to their typed envelopes;
// anything else goes out as a generic event with the domain payload.
func (p *EventPublisher) toCloudEvent(ctx context.Context, event domain.DomainEvent) *cloudevents.WMSCloudEvent {
	switch e := event.(type) {
	case *domain.SlottingCompletedEvent:
		return p.eventFactory.CreateRunCompletedEvent(ctx, cloudevents.RunCompletedData{
			RunID:       e.RunID,
			SourceName:  e.SourceName,
			TotalSKUs:   e.TotalSKUs,
			TotalPlaced: e.TotalPlaced,
			TraysUsed:   e.TraysUsed,
			Warnings:    e.Warnings,
			CompletedAt: e.CompletedAt,
		})
	case *domain.SlottingRunDeletedEvent:
		return p.eventFactory.CreateRunDeletedEvent(ctx, cloudevents.RunDeletedData{
			RunID:     e.RunID,
			DeletedAt: e.DeletedAt,
		})
	default:
		return p.eventFactory.CreateEvent(ctx, event.EventType(), "", event)
	}
}
