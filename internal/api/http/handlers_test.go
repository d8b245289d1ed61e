package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/slotting-service/internal/application"
	"github.com/wms-platform/slotting-service/internal/domain"
	"github.com/wms-platform/slotting-service/pkg/logging"
)

// memoryRunRepository is an in-memory implementation of
// domain.RunRepository for handler tests.
type memoryRunRepository struct {
	mu   sync.Mutex
	runs map[string]*domain.SlottingRun
}

func newMemoryRunRepository() *memoryRunRepository {
	return &memoryRunRepository{runs: make(map[string]*domain.SlottingRun)}
}

func (r *memoryRunRepository) Save(ctx context.Context, run *domain.SlottingRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.RunID] = run
	return nil
}

func (r *memoryRunRepository) FindByID(ctx context.Context, runID string) (*domain.SlottingRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return run, nil
}

func (r *memoryRunRepository) FindRecent(ctx context.Context, limit int) ([]*domain.SlottingRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var runs []*domain.SlottingRun
	for _, run := range r.runs {
		runs = append(runs, run)
		if len(runs) == limit {
			break
		}
	}
	return runs, nil
}

func (r *memoryRunRepository) Delete(ctx context.Context, runID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[runID]; !ok {
		return domain.ErrRunNotFound
	}
	delete(r.runs, runID)
	return nil
}

func (r *memoryRunRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.runs)), nil
}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	return nil
}

func (noopEventPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	return nil
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.New(logging.DefaultConfig("slotting-service-test"))
	service := application.NewSlottingApplicationService(
		newMemoryRunRepository(),
		noopEventPublisher{},
		nil,
		logger,
	)

	router := gin.New()
	RegisterRoutes(router, NewHandlers(service, logger))
	return router
}

func createRunBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"sourceName": "catalog.csv",
		"skus": []domain.SKU{
			{SKUID: "SKU-A", Length: 4, Width: 4, Height: 4, Weight: 1, Eaches: 2, WeeklyPicks: 30, ConfigID: 2, PickPriority: 1},
			{SKUID: "SKU-B", Length: 4, Width: 4, Height: 4, Weight: 1, Eaches: 2, WeeklyPicks: 10, ConfigID: 2, PickPriority: 2},
		},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func createRun(t *testing.T, router *gin.Engine) application.RunDTO {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slotting/runs", createRunBody(t))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var dto application.RunDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	return dto
}

func TestCreateRunEndpoint(t *testing.T) {
	router := setupRouter(t)

	dto := createRun(t, router)

	assert.NotEmpty(t, dto.RunID)
	assert.Equal(t, "catalog.csv", dto.SourceName)
	assert.Len(t, dto.Placements, 2)
	assert.Equal(t, 2, dto.Summary.TotalPlaced)
}

func TestCreateRunRejectsMissingSKUs(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slotting/runs", strings.NewReader(`{"sourceName":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadCatalogEndpoint(t *testing.T) {
	router := setupRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("catalog", "catalog.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(
		"sku,description,length_in,width_in,height_in,weight_lbs,eaches,weekly_picks,tray_config,pick_priority\n" +
			"SKU-A,Widget,4,4,4,1,2,30,2,1\n",
	))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slotting/runs/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var dto application.RunDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, "catalog.csv", dto.SourceName)
	assert.Len(t, dto.Placements, 1)
}

func TestUploadCatalogRejectsBadCSV(t *testing.T) {
	router := setupRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("catalog", "catalog.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("sku,description\nSKU-A,Widget\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slotting/runs/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRunEndpoint(t *testing.T) {
	router := setupRouter(t)
	created := createRun(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slotting/runs/"+created.RunID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var dto application.RunDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, created.RunID, dto.RunID)
}

func TestGetRunNotFound(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slotting/runs/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRunsEndpoint(t *testing.T) {
	router := setupRouter(t)
	createRun(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slotting/runs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Runs []application.RunListDTO `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Runs, 1)
}

func TestListRunsRejectsBadLimit(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slotting/runs?limit=zero", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPlacementsEndpoint(t *testing.T) {
	router := setupRouter(t)
	created := createRun(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slotting/runs/"+created.RunID+"/placements", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Placements []application.PlacementDTO `json:"placements"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Placements, 2)
}

func TestExportPlacementsEndpoint(t *testing.T) {
	router := setupRouter(t)
	created := createRun(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slotting/runs/"+created.RunID+"/placements.csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), created.RunID)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Bin_Label,SKU,Description"))
	assert.Contains(t, w.Body.String(), "SKU-A")
}

func TestDeleteRunEndpoint(t *testing.T) {
	router := setupRouter(t)
	created := createRun(t, router)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/slotting/runs/"+created.RunID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/slotting/runs/"+created.RunID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDefaultConfigEndpoint(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slotting/config/default", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var cfg domain.MachineConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, 3, cfg.Towers)
	assert.Len(t, cfg.TrayConfigs, 4)
}
