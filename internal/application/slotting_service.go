// Package application orchestrates slotting use cases: running the
// engine, storing runs, and publishing their events.
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wms-platform/slotting-service/internal/domain"
	"github.com/wms-platform/slotting-service/pkg/errors"
	"github.com/wms-platform/slotting-service/pkg/logging"
	"github.com/wms-platform/slotting-service/pkg/metrics"
)

const defaultListLimit = 20

// SlottingApplicationService handles slotting use cases
type SlottingApplicationService struct {
	repo      domain.RunRepository
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	logger    *logging.Logger
}

// NewSlottingApplicationService creates a new SlottingApplicationService.
// metrics may be nil, e.g. in tests.
func NewSlottingApplicationService(
	repo domain.RunRepository,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
) *SlottingApplicationService {
	return &SlottingApplicationService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// RunSlotting executes the engine over the command's SKU list, stores
// the run, and publishes its completion event.
func (s *SlottingApplicationService) RunSlotting(ctx context.Context, cmd RunSlottingCommand) (*RunDTO, error) {
	cfg := domain.DefaultMachineConfig()
	if cmd.Config != nil {
		cfg = *cmd.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}
	if len(cmd.SKUs) == 0 {
		return nil, errors.ErrValidation("at least one SKU is required")
	}

	start := time.Now()
	run, err := domain.NewSlottingRun(cmd.SourceName, cmd.SKUs, cfg)
	if err != nil {
		s.recordRun(false, time.Since(start))
		return nil, errors.ErrValidation(err.Error())
	}
	duration := time.Since(start)

	if err := s.repo.Save(ctx, run); err != nil {
		s.recordRun(false, duration)
		s.logger.WithError(err).Error("Failed to save slotting run", "runId", run.RunID)
		return nil, fmt.Errorf("failed to save slotting run: %w", err)
	}

	// The run is already durable; a publish failure must not undo it.
	if err := s.publisher.PublishAll(ctx, run.DomainEvents); err != nil {
		s.logger.WithError(err).Warn("Failed to publish slotting events", "runId", run.RunID)
	}
	run.ClearDomainEvents()

	s.recordRunResult(run, duration)
	s.logger.SlottingRun(ctx, run.RunID,
		run.Result.Summary.TotalSKUs,
		run.Result.Summary.TotalPlaced,
		run.Result.Summary.TraysUsed,
		len(run.Result.Summary.Warnings),
		duration,
	)

	return ToRunDTO(run), nil
}

// GetRun retrieves a stored run by ID
func (s *SlottingApplicationService) GetRun(ctx context.Context, query GetRunQuery) (*RunDTO, error) {
	run, err := s.repo.FindByID(ctx, query.RunID)
	if err != nil {
		if err == domain.ErrRunNotFound {
			return nil, errors.ErrNotFoundWithID("slotting run", query.RunID)
		}
		s.logger.WithError(err).Error("Failed to get slotting run", "runId", query.RunID)
		return nil, fmt.Errorf("failed to get slotting run: %w", err)
	}

	return ToRunDTO(run), nil
}

// GetRunPlacements retrieves the placement table of a stored run, for
// export.
func (s *SlottingApplicationService) GetRunPlacements(ctx context.Context, runID string) ([]domain.PlacementRecord, error) {
	run, err := s.repo.FindByID(ctx, runID)
	if err != nil {
		if err == domain.ErrRunNotFound {
			return nil, errors.ErrNotFoundWithID("slotting run", runID)
		}
		return nil, fmt.Errorf("failed to get slotting run: %w", err)
	}

	return run.Result.Placements, nil
}

// ListRuns lists the most recent runs, newest first
func (s *SlottingApplicationService) ListRuns(ctx context.Context, query ListRunsQuery) ([]RunListDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	runs, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list slotting runs")
		return nil, fmt.Errorf("failed to list slotting runs: %w", err)
	}

	return ToRunListDTOs(runs), nil
}

// DeleteRun removes a stored run
func (s *SlottingApplicationService) DeleteRun(ctx context.Context, cmd DeleteRunCommand) error {
	if err := s.repo.Delete(ctx, cmd.RunID); err != nil {
		if err == domain.ErrRunNotFound {
			return errors.ErrNotFoundWithID("slotting run", cmd.RunID)
		}
		s.logger.WithError(err).Error("Failed to delete slotting run", "runId", cmd.RunID)
		return fmt.Errorf("failed to delete slotting run: %w", err)
	}

	event := &domain.SlottingRunDeletedEvent{RunID: cmd.RunID, DeletedAt: time.Now().UTC()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish run deleted event", "runId", cmd.RunID)
	}

	s.logger.Info("Deleted slotting run", "runId", cmd.RunID)
	return nil
}

// DefaultMachineConfig exposes the engine defaults for clients that
// want to edit a config before running.
func (s *SlottingApplicationService) DefaultMachineConfig() domain.MachineConfig {
	return domain.DefaultMachineConfig()
}

func (s *SlottingApplicationService) recordRun(success bool, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordSlottingRun(success, duration)
}

func (s *SlottingApplicationService) recordRunResult(run *domain.SlottingRun, duration time.Duration) {
	if s.metrics == nil {
		return
	}

	s.metrics.RecordSlottingRun(true, duration)
	s.metrics.SetTrayUtilization(run.Result.Summary.CellUtilizationPct)

	zoneCounts := make(map[domain.ZoneTier]int)
	for _, p := range run.Result.Placements {
		zoneCounts[p.Zone]++
	}
	for zone, count := range zoneCounts {
		s.metrics.RecordSKUPlaced(string(zone), count)
	}

	checkCounts := make(map[domain.CheckKind]int)
	for _, e := range run.Result.Summary.ValidationErrors {
		checkCounts[e.Check]++
	}
	for check, count := range checkCounts {
		s.metrics.RecordSKUExcluded(string(check), count)
	}

	warnCounts := make(map[domain.WarningKind]int)
	for _, w := range run.Result.Summary.Warnings {
		warnCounts[w.Kind]++
	}
	for kind, count := range warnCounts {
		s.metrics.RecordPlacementWarning(string(kind), count)
	}
}
