package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wms-platform/slotting-service/pkg/logging"
)

// EventFactory creates CloudEvents for slotting domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new WMSCloudEvent with the given parameters.
// The correlation ID the middleware placed into the request context is
// carried onto the event, so consumers can tie the event back to the
// request that produced it.
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *WMSCloudEvent {
	event := &WMSCloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}

	if id, ok := ctx.Value(logging.CorrelationIDKey).(string); ok && id != "" {
		event.CorrelationID = id
	}

	return event
}

// CreateRunCompletedEvent creates a SlottingRunCompleted event
func (f *EventFactory) CreateRunCompletedEvent(ctx context.Context, data RunCompletedData) *WMSCloudEvent {
	event := f.CreateEvent(ctx, SlottingRunCompleted, "slotting-run/"+data.RunID, data)
	event.RunID = data.RunID
	return event
}

// CreateRunDeletedEvent creates a SlottingRunDeleted event
func (f *EventFactory) CreateRunDeletedEvent(ctx context.Context, data RunDeletedData) *WMSCloudEvent {
	event := f.CreateEvent(ctx, SlottingRunDeleted, "slotting-run/"+data.RunID, data)
	event.RunID = data.RunID
	return event
}
