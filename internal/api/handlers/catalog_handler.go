package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/models"
)

// ============================================
// Catalog Handler
// ============================================

// CatalogHandler serves the static field catalog. It needs no services.
type CatalogHandler struct{}

// ListCategories - List categories in display order
// GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	infos := fields.Categories()
	response := make([]models.CategoryResponse, len(infos))
	for i, info := range infos {
		response[i] = models.CategoryResponse{
			Value:       string(info.Value),
			Label:       info.Label,
			Description: info.Description,
		}
	}
	c.JSON(http.StatusOK, response)
}

// GetCategory - Get a category with its full field list
// GET /categories/:category
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category := c.Param("category")
	if !fields.IsKnownCategory(category) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	for _, info := range fields.Categories() {
		if string(info.Value) != category {
			continue
		}
		c.JSON(http.StatusOK, models.CategoryResponse{
			Value:       string(info.Value),
			Label:       info.Label,
			Description: info.Description,
			Fields:      fields.GetCategoryFields(category),
		})
		return
	}
}

// CommonFields - List the fields every category shares
// GET /categories/common-fields
func (h *CatalogHandler) CommonFields(c *gin.Context) {
	c.JSON(http.StatusOK, fields.CommonFields())
}

type previewRequest struct {
	From       string         `json:"from" binding:"required"`
	To         string         `json:"to" binding:"required"`
	FieldOrder []string       `json:"fieldOrder"`
	Values     map[string]any `json:"values"`
}

// PreviewMigration - Classify fields for a category change without touching a project
// POST /categories/migration-preview
func (h *CatalogHandler) PreviewMigration(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !fields.IsKnownCategory(req.To) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown target category"})
		return
	}

	plan := fields.AnalyzeFieldMigration(req.From, req.To, req.FieldOrder, req.Values)
	c.JSON(http.StatusOK, models.MigrationPreviewResponse{
		Plan:                 plan,
		RequiresConfirmation: plan.RequiresConfirmation(),
	})
}
