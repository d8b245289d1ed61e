package domain

import (
	"context"
	"errors"
)

// ErrRunNotFound is returned when a slotting run does not exist.
var ErrRunNotFound = errors.New("slotting run not found")

// RunRepository stores and retrieves slotting runs.
type RunRepository interface {
	Save(ctx context.Context, run *SlottingRun) error
	FindByID(ctx context.Context, runID string) (*SlottingRun, error)
	FindRecent(ctx context.Context, limit int) ([]*SlottingRun, error)
	Delete(ctx context.Context, runID string) error
	Count(ctx context.Context) (int64, error)
}
