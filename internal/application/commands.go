package application

import (
	"github.com/wms-platform/slotting-service/internal/domain"
)

// RunSlottingCommand represents the command to execute a slotting run
type RunSlottingCommand struct {
	SourceName string
	SKUs       []domain.SKU
	// Config overrides the machine defaults when set.
	Config *domain.MachineConfig
}

// DeleteRunCommand represents the command to delete a stored run
type DeleteRunCommand struct {
	RunID string
}

// GetRunQuery represents the query to get a run by ID
type GetRunQuery struct {
	RunID string
}

// ListRunsQuery represents the query to list recent runs
type ListRunsQuery struct {
	Limit int
}
