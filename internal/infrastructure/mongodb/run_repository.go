// Package mongodb persists slotting runs.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/slotting-service/internal/domain"
	"github.com/wms-platform/slotting-service/pkg/logging"
	"github.com/wms-platform/slotting-service/pkg/metrics"
	shared "github.com/wms-platform/slotting-service/pkg/mongodb"
)

const runsCollection = "slotting_runs"

// RunRepository implements domain.RunRepository using MongoDB
type RunRepository struct {
	collection *mongo.Collection
	metrics    *metrics.Metrics
	logger     *logging.Logger
}

// NewRunRepository creates a new RunRepository. metrics and logger may
// be nil, e.g. in tests.
func NewRunRepository(db *mongo.Database, m *metrics.Metrics, logger *logging.Logger) *RunRepository {
	repo := &RunRepository{
		collection: db.Collection(runsCollection),
		metrics:    m,
		logger:     logger,
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *RunRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "runId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	}

	r.collection.Indexes().CreateMany(ctx, indexes)
}

// observe records one collection operation against the metrics
// registry and the query log.
func (r *RunRepository) observe(ctx context.Context, operation string, start time.Time, err error, rows int64) {
	duration := time.Since(start)
	success := err == nil || err == domain.ErrRunNotFound
	if r.metrics != nil {
		r.metrics.RecordMongoDBOperation(runsCollection, operation, success, duration)
	}
	if r.logger != nil {
		r.logger.DatabaseQuery(ctx, runsCollection, operation, duration, success, rows)
	}
}

// Save persists a run. Runs are write-once, so saving twice with the
// same run id is an error.
func (r *RunRepository) Save(ctx context.Context, run *domain.SlottingRun) error {
	start := time.Now()
	_, err := r.collection.InsertOne(ctx, run)
	r.observe(ctx, "insert", start, err, 1)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("slotting run %s already exists", run.RunID)
		}
		return fmt.Errorf("failed to save slotting run: %w", err)
	}
	return nil
}

// FindByID retrieves a run by its ID
func (r *RunRepository) FindByID(ctx context.Context, runID string) (*domain.SlottingRun, error) {
	start := time.Now()
	var run domain.SlottingRun
	err := r.collection.FindOne(ctx, shared.BuildFilter("runId", runID)).Decode(&run)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			err = domain.ErrRunNotFound
		}
		r.observe(ctx, "findOne", start, err, 0)
		return nil, err
	}

	r.observe(ctx, "findOne", start, nil, 1)
	return &run, nil
}

// FindRecent retrieves the most recent runs, newest first.
func (r *RunRepository) FindRecent(ctx context.Context, limit int) ([]*domain.SlottingRun, error) {
	start := time.Now()
	opts := options.Find().
		SetSort(shared.SortDescending("createdAt")).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.observe(ctx, "find", start, err, 0)
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []*domain.SlottingRun
	if err := cursor.All(ctx, &runs); err != nil {
		r.observe(ctx, "find", start, err, 0)
		return nil, err
	}

	r.observe(ctx, "find", start, nil, int64(len(runs)))
	return runs, nil
}

// Delete removes a run
func (r *RunRepository) Delete(ctx context.Context, runID string) error {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, shared.BuildFilter("runId", runID))
	if err != nil {
		r.observe(ctx, "delete", start, err, 0)
		return err
	}
	if result.DeletedCount == 0 {
		r.observe(ctx, "delete", start, domain.ErrRunNotFound, 0)
		return domain.ErrRunNotFound
	}
	r.observe(ctx, "delete", start, nil, result.DeletedCount)
	return nil
}

// Count returns the total number of stored runs
func (r *RunRepository) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	r.observe(ctx, "count", start, err, count)
	return count, err
}
