package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/slotting-service/internal/domain"
	"github.com/wms-platform/slotting-service/pkg/errors"
	"github.com/wms-platform/slotting-service/pkg/logging"
)

// MockRunRepository is a mock implementation of domain.RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Save(ctx context.Context, run *domain.SlottingRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) FindByID(ctx context.Context, runID string) (*domain.SlottingRun, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SlottingRun), args.Error(1)
}

func (m *MockRunRepository) FindRecent(ctx context.Context, limit int) ([]*domain.SlottingRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SlottingRun), args.Error(1)
}

func (m *MockRunRepository) Delete(ctx context.Context, runID string) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}

func (m *MockRunRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of domain.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func newTestService(repo *MockRunRepository, publisher *MockEventPublisher) *SlottingApplicationService {
	logger := logging.New(logging.DefaultConfig("slotting-service-test"))
	return NewSlottingApplicationService(repo, publisher, nil, logger)
}

func testSKUs() []domain.SKU {
	return []domain.SKU{
		{SKUID: "SKU-A", Length: 4, Width: 4, Height: 4, Weight: 1, Eaches: 2, WeeklyPicks: 30, ConfigID: 2, PickPriority: 1},
		{SKUID: "SKU-B", Length: 4, Width: 4, Height: 4, Weight: 1, Eaches: 2, WeeklyPicks: 10, ConfigID: 2, PickPriority: 2},
	}
}

func TestRunSlotting(t *testing.T) {
	repo := new(MockRunRepository)
	publisher := new(MockEventPublisher)
	service := newTestService(repo, publisher)

	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.SlottingRun")).Return(nil)
	publisher.On("PublishAll", mock.Anything, mock.Anything).Return(nil)

	dto, err := service.RunSlotting(context.Background(), RunSlottingCommand{
		SourceName: "catalog.csv",
		SKUs:       testSKUs(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, dto.RunID)
	assert.Equal(t, "catalog.csv", dto.SourceName)
	assert.Equal(t, 2, dto.SKUCount)
	assert.Len(t, dto.Placements, 2)
	assert.Equal(t, 2, dto.Summary.TotalPlaced)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRunSlottingRejectsEmptyInput(t *testing.T) {
	service := newTestService(new(MockRunRepository), new(MockEventPublisher))

	_, err := service.RunSlotting(context.Background(), RunSlottingCommand{})

	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestRunSlottingRejectsBadConfig(t *testing.T) {
	service := newTestService(new(MockRunRepository), new(MockEventPublisher))

	cfg := domain.DefaultMachineConfig()
	cfg.ZoneLabel = "XX"

	_, err := service.RunSlotting(context.Background(), RunSlottingCommand{
		SKUs:   testSKUs(),
		Config: &cfg,
	})

	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestRunSlottingSucceedsWhenPublishFails(t *testing.T) {
	repo := new(MockRunRepository)
	publisher := new(MockEventPublisher)
	service := newTestService(repo, publisher)

	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishAll", mock.Anything, mock.Anything).Return(assert.AnError)

	dto, err := service.RunSlotting(context.Background(), RunSlottingCommand{SKUs: testSKUs()})

	// The stored run wins; the publish failure is only logged.
	require.NoError(t, err)
	assert.NotEmpty(t, dto.RunID)
}

func TestGetRunNotFound(t *testing.T) {
	repo := new(MockRunRepository)
	service := newTestService(repo, new(MockEventPublisher))

	repo.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrRunNotFound)

	_, err := service.GetRun(context.Background(), GetRunQuery{RunID: "missing"})

	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestGetRun(t *testing.T) {
	repo := new(MockRunRepository)
	service := newTestService(repo, new(MockEventPublisher))

	run, err := domain.NewSlottingRun("src", testSKUs(), domain.DefaultMachineConfig())
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, run.RunID).Return(run, nil)

	dto, err := service.GetRun(context.Background(), GetRunQuery{RunID: run.RunID})

	require.NoError(t, err)
	assert.Equal(t, run.RunID, dto.RunID)
	assert.Len(t, dto.Placements, 2)
}

func TestListRunsDefaultsLimit(t *testing.T) {
	repo := new(MockRunRepository)
	service := newTestService(repo, new(MockEventPublisher))

	run, err := domain.NewSlottingRun("src", testSKUs(), domain.DefaultMachineConfig())
	require.NoError(t, err)
	repo.On("FindRecent", mock.Anything, 20).Return([]*domain.SlottingRun{run}, nil)

	dtos, err := service.ListRuns(context.Background(), ListRunsQuery{})

	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, run.RunID, dtos[0].RunID)
	assert.Equal(t, 2, dtos[0].TotalPlaced)
}

func TestDeleteRun(t *testing.T) {
	repo := new(MockRunRepository)
	publisher := new(MockEventPublisher)
	service := newTestService(repo, publisher)

	repo.On("Delete", mock.Anything, "run-1").Return(nil)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("*domain.SlottingRunDeletedEvent")).Return(nil)

	err := service.DeleteRun(context.Background(), DeleteRunCommand{RunID: "run-1"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDeleteRunNotFound(t *testing.T) {
	repo := new(MockRunRepository)
	service := newTestService(repo, new(MockEventPublisher))

	repo.On("Delete", mock.Anything, "missing").Return(domain.ErrRunNotFound)

	err := service.DeleteRun(context.Background(), DeleteRunCommand{RunID: "missing"})

	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}
