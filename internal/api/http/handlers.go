// Package http exposes the slotting engine over a REST API.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/slotting-service/internal/application"
	"github.com/wms-platform/slotting-service/internal/catalog"
	"github.com/wms-platform/slotting-service/internal/domain"
	"github.com/wms-platform/slotting-service/pkg/logging"
	"github.com/wms-platform/slotting-service/pkg/middleware"
)

// Handlers contains HTTP handlers for slotting endpoints
type Handlers struct {
	service *application.SlottingApplicationService
	logger  *logging.Logger
}

// NewHandlers creates new HTTP handlers
func NewHandlers(service *application.SlottingApplicationService, logger *logging.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger,
	}
}

type runRequest struct {
	SourceName string                `json:"sourceName"`
	SKUs       []domain.SKU          `json:"skus" binding:"required"`
	Config     *domain.MachineConfig `json:"config"`
}

// CreateRun handles POST /api/v1/slotting/runs
func (h *Handlers) CreateRun() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		var req runRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		result, err := h.service.RunSlotting(c.Request.Context(), application.RunSlottingCommand{
			SourceName: req.SourceName,
			SKUs:       req.SKUs,
			Config:     req.Config,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

// UploadCatalog handles POST /api/v1/slotting/runs/upload: a multipart
// CSV catalog slotted with the default machine config.
func (h *Handlers) UploadCatalog() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		fileHeader, err := c.FormFile("catalog")
		if err != nil {
			responder.RespondBadRequest("multipart field 'catalog' is required")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			responder.RespondBadRequest(fmt.Sprintf("cannot open upload: %v", err))
			return
		}
		defer file.Close()

		skus, err := catalog.Load(file)
		if err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		// Optional machine config as a JSON form field; defaults apply
		// when absent.
		var cfg *domain.MachineConfig
		if raw := c.PostForm("config"); raw != "" {
			cfg = &domain.MachineConfig{}
			if err := json.Unmarshal([]byte(raw), cfg); err != nil {
				responder.RespondBadRequest(fmt.Sprintf("invalid config field: %v", err))
				return
			}
		}

		result, err := h.service.RunSlotting(c.Request.Context(), application.RunSlottingCommand{
			SourceName: fileHeader.Filename,
			SKUs:       skus,
			Config:     cfg,
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

// GetRun handles GET /api/v1/slotting/runs/:runId
func (h *Handlers) GetRun() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		result, err := h.service.GetRun(c.Request.Context(), application.GetRunQuery{
			RunID: c.Param("runId"),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// ListRuns handles GET /api/v1/slotting/runs
func (h *Handlers) ListRuns() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				responder.RespondBadRequest("limit must be a positive integer")
				return
			}
			limit = parsed
		}

		result, err := h.service.ListRuns(c.Request.Context(), application.ListRunsQuery{Limit: limit})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"runs": result})
	}
}

// ListPlacements handles GET /api/v1/slotting/runs/:runId/placements
func (h *Handlers) ListPlacements() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		result, err := h.service.GetRun(c.Request.Context(), application.GetRunQuery{
			RunID: c.Param("runId"),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"placements": result.Placements})
	}
}

// ExportPlacements handles GET /api/v1/slotting/runs/:runId/placements.csv
func (h *Handlers) ExportPlacements() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		runID := c.Param("runId")
		placements, err := h.service.GetRunPlacements(c.Request.Context(), runID)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=placements-%s.csv", runID))
		c.Status(http.StatusOK)

		if err := catalog.ExportPlacements(c.Writer, placements); err != nil {
			h.logger.WithError(err).Error("Failed to stream placement export", "runId", runID)
		}
	}
}

// DeleteRun handles DELETE /api/v1/slotting/runs/:runId
func (h *Handlers) DeleteRun() gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, h.logger.Logger)

		err := h.service.DeleteRun(c.Request.Context(), application.DeleteRunCommand{
			RunID: c.Param("runId"),
		})
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// GetDefaultConfig handles GET /api/v1/slotting/config/default
func (h *Handlers) GetDefaultConfig() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, h.service.DefaultMachineConfig())
	}
}
