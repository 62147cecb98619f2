package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/service"
)

// ============================================
// Analytics Handler (admin)
// ============================================

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Overview - Platform totals, categories, top tags and completeness
// GET /admin/analytics
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := h.analyticsService.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load analytics")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Completeness - Average completeness per category
// GET /admin/analytics/completeness
func (h *AnalyticsHandler) Completeness(c *gin.Context) {
	stats, err := h.analyticsService.CategoryCompleteness(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load completeness")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Snapshots - Daily snapshots for the last ?days= days
// GET /admin/analytics/snapshots
func (h *AnalyticsHandler) Snapshots(c *gin.Context) {
	snaps, err := h.analyticsService.ListSnapshots(c.Request.Context(), queryInt(c, "days", 30))
	if err != nil {
		respondError(c, err, "Failed to load snapshots")
		return
	}
	c.JSON(http.StatusOK, snaps)
}

// TakeSnapshot - Store today's snapshot now
// POST /admin/analytics/snapshots
func (h *AnalyticsHandler) TakeSnapshot(c *gin.Context) {
	snap, err := h.analyticsService.TakeSnapshot(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to take snapshot")
		return
	}
	c.JSON(http.StatusCreated, snap)
}
