// Package cloudevents defines the CloudEvents v1.0 envelope the
// slotting service publishes to Kafka.
package cloudevents

import (
	"time"
)

// EventType constants for slotting domain events
const (
	SlottingRunCompleted = "wms.slotting.run-completed"
	SlottingRunDeleted   = "wms.slotting.run-deleted"
)

// Source constant for events published by this service
const (
	SourceSlotting = "/wms/slotting-service"
)

// WMSCloudEvent represents a CloudEvents v1.0 compliant event
type WMSCloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// WMS-specific extensions
	CorrelationID string `json:"wmscorrelationid,omitempty"`
	RunID         string `json:"wmsrunid,omitempty"`
}

// RunCompletedData is the payload of a SlottingRunCompleted event.
type RunCompletedData struct {
	RunID       string    `json:"runId"`
	SourceName  string    `json:"sourceName,omitempty"`
	TotalSKUs   int       `json:"totalSkus"`
	TotalPlaced int       `json:"totalPlaced"`
	TraysUsed   int       `json:"traysUsed"`
	Warnings    int       `json:"warnings"`
	CompletedAt time.Time `json:"completedAt"`
}

// RunDeletedData is the payload of a SlottingRunDeleted event.
type RunDeletedData struct {
	RunID     string    `json:"runId"`
	DeletedAt time.Time `json:"deletedAt"`
}
