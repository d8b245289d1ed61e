package domain

import (
	"time"

	"github.com/google/uuid"
)

// SlottingRun is the aggregate root for one completed engine
// invocation: the inputs it was given and the result it produced.
// Runs are write-once; re-slotting means a new run.
type SlottingRun struct {
	RunID         string        `json:"runId" bson:"runId"`
	SourceName    string        `json:"sourceName,omitempty" bson:"sourceName,omitempty"`
	Machine       MachineConfig `json:"machine" bson:"machine"`
	SKUCount      int           `json:"skuCount" bson:"skuCount"`
	Result        *Result       `json:"result" bson:"result"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
	DomainEvents  []DomainEvent `json:"-" bson:"-"` // Transient
}

// NewSlottingRun executes the engine over the given SKUs and wraps the
// result in a run aggregate.
func NewSlottingRun(sourceName string, skus []SKU, cfg MachineConfig) (*SlottingRun, error) {
	result, err := Slot(skus, cfg)
	if err != nil {
		return nil, err
	}

	run := &SlottingRun{
		RunID:      uuid.New().String(),
		SourceName: sourceName,
		Machine:    cfg,
		SKUCount:   len(skus),
		Result:     result,
		CreatedAt:  time.Now().UTC(),
	}

	run.AddDomainEvent(&SlottingCompletedEvent{
		RunID:       run.RunID,
		SourceName:  sourceName,
		TotalSKUs:   result.Summary.TotalSKUs,
		TotalPlaced: result.Summary.TotalPlaced,
		TraysUsed:   result.Summary.TraysUsed,
		Warnings:    len(result.Summary.Warnings),
		CompletedAt: run.CreatedAt,
	})

	return run, nil
}

// AddDomainEvent adds a domain event
func (r *SlottingRun) AddDomainEvent(event DomainEvent) {
	r.DomainEvents = append(r.DomainEvents, event)
}

// ClearDomainEvents clears all domain events
func (r *SlottingRun) ClearDomainEvents() {
	r.DomainEvents = make([]DomainEvent, 0)
}
