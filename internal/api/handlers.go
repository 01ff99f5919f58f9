package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/report-triage/internal/catalog"
	"github.com/jonesrussell/report-triage/internal/database"
	"github.com/jonesrussell/report-triage/internal/domain"
	"github.com/jonesrussell/report-triage/internal/engine"
	"github.com/jonesrussell/report-triage/internal/logger"
	"github.com/jonesrussell/report-triage/internal/processor"
)

// HistoryStore reads persisted triage verdicts. Nil when history is
// disabled.
type HistoryStore interface {
	GetByReportID(ctx context.Context, reportID string) (*domain.TriageHistory, error)
	GetStats(ctx context.Context) (*database.TriageStats, error)
}

// Handler handles HTTP requests for the triage API.
type Handler struct {
	batchProcessor *processor.BatchProcessor
	catalog        *catalog.Catalog
	history        HistoryStore
	metricsHandler http.Handler
	serviceName    string
	serviceVersion string
	log            logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(
	batchProcessor *processor.BatchProcessor,
	cat *catalog.Catalog,
	history HistoryStore,
	metricsHandler http.Handler,
	serviceName, serviceVersion string,
	log logger.Logger,
) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		batchProcessor: batchProcessor,
		catalog:        cat,
		history:        history,
		metricsHandler: metricsHandler,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
		log:            log,
	}
}

// TriageRequest represents a single triage request.
type TriageRequest struct {
	Report *domain.Report `json:"report" binding:"required"`
}

// TriageResponse represents a triage response.
type TriageResponse struct {
	Report     *domain.Report      `json:"report"`
	Result     domain.TriageResult `json:"result"`
	DurationMs int64               `json:"duration_ms"`
}

// BatchTriageRequest represents a batch triage request.
type BatchTriageRequest struct {
	Reports []*domain.Report `json:"reports" binding:"required,min=1,max=500"`
}

// BatchTriageResponse represents a batch triage response.
type BatchTriageResponse struct {
	Results []*processor.ProcessResult `json:"results"`
	Total   int                        `json:"total"`
	Unclear int                        `json:"unclear"`
}

// CatalogResponse summarizes the loaded rule catalog.
type CatalogResponse struct {
	EngineVersion string            `json:"engine_version"`
	Categories    []domain.Category `json:"categories"`
	PriorityOrder []domain.Category `json:"priority_order"`
	KeywordCount  int               `json:"keyword_count"`
	RegexCount    int               `json:"regex_count"`
}

// Triage handles POST /api/v1/triage.
func (h *Handler) Triage(c *gin.Context) {
	var req TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid triage request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.batchProcessor.ProcessOne(c.Request.Context(), req.Report)

	h.log.Info("report triaged",
		logger.String("report_id", res.Report.ID),
		logger.String("category", string(res.Result.Category)),
		logger.String("reason", string(res.Result.Reason)))

	c.JSON(http.StatusOK, TriageResponse{
		Report:     res.Report,
		Result:     res.Result,
		DurationMs: res.DurationMs,
	})
}

// TriageBatch handles POST /api/v1/triage/batch.
func (h *Handler) TriageBatch(c *gin.Context) {
	var req BatchTriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid batch triage request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := h.batchProcessor.Process(c.Request.Context(), req.Reports)

	unclear := 0
	for _, r := range results {
		if r.Result.Category == domain.CategoryUnclear {
			unclear++
		}
	}

	h.log.Info("batch triaged",
		logger.Int("total", len(results)),
		logger.Int("unclear", unclear))

	c.JSON(http.StatusOK, BatchTriageResponse{
		Results: results,
		Total:   len(results),
		Unclear: unclear,
	})
}

// GetTriageResult handles GET /api/v1/triage/:report_id.
func (h *Handler) GetTriageResult(c *gin.Context) {
	reportID := c.Param("report_id")
	if reportID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report_id is required"})
		return
	}
	if h.history == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "history persistence is disabled"})
		return
	}

	history, err := h.history.GetByReportID(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no triage record for report"})
			return
		}
		h.log.Error("failed to load triage history",
			logger.String("report_id", reportID),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load triage history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// ListCategories handles GET /api/v1/categories.
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.catalog.Categories,
		"total":      len(h.catalog.Categories),
	})
}

// GetCatalog handles GET /api/v1/catalog.
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, CatalogResponse{
		EngineVersion: engine.Version,
		Categories:    h.catalog.Categories,
		PriorityOrder: h.catalog.PriorityOrder,
		KeywordCount:  len(h.catalog.Keywords),
		RegexCount:    len(h.catalog.Regexes),
	})
}

// GetStats handles GET /api/v1/stats.
func (h *Handler) GetStats(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusOK, emptyStats())
		return
	}

	stats, err := h.history.GetStats(c.Request.Context())
	if err != nil {
		h.log.Error("failed to get stats", logger.Error(err))
		// Return empty stats instead of error to avoid breaking dashboards.
		c.JSON(http.StatusOK, emptyStats())
		return
	}

	c.JSON(http.StatusOK, stats)
}

func emptyStats() *database.TriageStats {
	return &database.TriageStats{
		ByCategory: map[string]int{},
		ByReason:   map[string]int{},
	}
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
		"version": h.serviceVersion,
	})
}

// ReadyCheck handles GET /ready.
func (h *Handler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"engine": engine.Version,
	})
}
