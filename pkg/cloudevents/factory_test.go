package cloudevents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/slotting-service/pkg/logging"
)

func TestCreateRunCompletedEvent(t *testing.T) {
	factory := NewEventFactory(SourceSlotting)

	data := RunCompletedData{
		RunID:       "run-1",
		SourceName:  "catalog.csv",
		TotalSKUs:   10,
		TotalPlaced: 9,
		TraysUsed:   3,
		Warnings:    1,
		CompletedAt: time.Now().UTC(),
	}

	event := factory.CreateRunCompletedEvent(context.Background(), data)

	require.NotNil(t, event)
	assert.Equal(t, "1.0", event.SpecVersion)
	assert.Equal(t, SlottingRunCompleted, event.Type)
	assert.Equal(t, SourceSlotting, event.Source)
	assert.Equal(t, "slotting-run/run-1", event.Subject)
	assert.Equal(t, "run-1", event.RunID)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "application/json", event.DataContentType)
}

func TestCreateEventCarriesCorrelationID(t *testing.T) {
	factory := NewEventFactory(SourceSlotting)

	ctx := logging.ContextWithCorrelationID(context.Background(), "corr-123")
	event := factory.CreateRunCompletedEvent(ctx, RunCompletedData{RunID: "run-2"})

	assert.Equal(t, "corr-123", event.CorrelationID)
}

func TestCreateEventWithoutCorrelationID(t *testing.T) {
	factory := NewEventFactory(SourceSlotting)

	event := factory.CreateRunDeletedEvent(context.Background(), RunDeletedData{
		RunID:     "run-3",
		DeletedAt: time.Now().UTC(),
	})

	assert.Empty(t, event.CorrelationID)
	assert.Equal(t, SlottingRunDeleted, event.Type)
	assert.Equal(t, "run-3", event.RunID)
}
