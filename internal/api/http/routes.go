package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all slotting routes
func RegisterRoutes(router *gin.Engine, handlers *Handlers) {
	slottingAPI := router.Group("/api/v1/slotting")
	{
		slottingAPI.POST("/runs", handlers.CreateRun())
		slottingAPI.POST("/runs/upload", handlers.UploadCatalog())
		slottingAPI.GET("/runs", handlers.ListRuns())
		slottingAPI.GET("/runs/:runId", handlers.GetRun())
		slottingAPI.GET("/runs/:runId/placements", handlers.ListPlacements())
		slottingAPI.GET("/runs/:runId/placements.csv", handlers.ExportPlacements())
		slottingAPI.DELETE("/runs/:runId", handlers.DeleteRun())

		slottingAPI.GET("/config/default", handlers.GetDefaultConfig())
	}
}
