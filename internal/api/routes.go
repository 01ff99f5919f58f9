package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if handler.metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(handler.metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Triage endpoints
		triage := v1.Group("/triage")
		{
			triage.POST("", handler.Triage)                    // POST /api/v1/triage
			triage.POST("/batch", handler.TriageBatch)         // POST /api/v1/triage/batch
			triage.GET("/:report_id", handler.GetTriageResult) // GET /api/v1/triage/:report_id
		}

		// Catalog endpoints
		v1.GET("/categories", handler.ListCategories) // GET /api/v1/categories
		v1.GET("/catalog", handler.GetCatalog)        // GET /api/v1/catalog

		// Statistics endpoint
		v1.GET("/stats", handler.GetStats) // GET /api/v1/stats
	}
}
