package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/api/middleware"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/models"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/service"
)

// ============================================
// Project Handler
// ============================================

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// List - List public projects; owner=me resolves to the caller
// GET /projects?category=&tag=&owner=&q=&limit=&offset=
func (h *ProjectHandler) List(c *gin.Context) {
	ownerID := c.Query("owner")
	if ownerID == "me" {
		var ok bool
		if ownerID, ok = middleware.RequireUserID(c); !ok {
			return
		}
	}

	filter := repository.ProjectFilter{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		OwnerID:  ownerID,
		Search:   c.Query("q"),
		Limit:    queryInt(c, "limit", 20),
		Offset:   queryInt(c, "offset", 0),
	}

	projects, total, err := h.projectService.ListPublic(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{
		Projects: toProjectResponses(projects),
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
}

// ListMine - List the caller's projects; ?deleted=true lists the trash
// GET /me/projects
func (h *ProjectHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListByOwner(c.Request.Context(), userID, c.Query("deleted") == "true")
	if err != nil {
		respondError(c, err, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, toProjectResponses(projects))
}

// Create - Create a new project
// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), userID, service.CreateProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		FieldOrder:   req.FieldOrder,
		CategoryData: req.CategoryData,
		ThumbnailURL: req.ThumbnailURL,
		URLLinks:     req.URLLinks,
	})
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

// Get - Get a project by ID
// GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch project")
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// GetBySlug - Get a project by its slug
// GET /projects/slug/:slug
func (h *ProjectHandler) GetBySlug(c *gin.Context) {
	project, err := h.projectService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to fetch project")
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Update - Update title, description and links
// PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), userID, c.Param("id"), service.UpdateProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		URLLinks:     req.URLLinks,
	})
	if err != nil {
		respondError(c, err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Delete - Move a project to the trash
// DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.SoftDelete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

// Restore - Bring a project back from the trash
// POST /projects/:id/restore
func (h *ProjectHandler) Restore(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Restore(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to restore project")
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// PermanentDelete - Remove a trashed project for good
// DELETE /projects/:id/permanent
func (h *ProjectHandler) PermanentDelete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.PermanentDelete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

// ============================================
// Category data & completeness
// ============================================

// UpdateCategoryData - Merge values into the project's category data
// PATCH /projects/:id/category-data
func (h *ProjectHandler) UpdateCategoryData(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateCategoryDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.UpdateCategoryData(c.Request.Context(), userID, c.Param("id"), req.Data)
	if err != nil {
		respondError(c, err, "Failed to update category data")
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Completeness - Score the visible fields of a project
// GET /projects/:id/completeness
func (h *ProjectHandler) Completeness(c *gin.Context) {
	breakdown, err := h.projectService.Completeness(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to compute completeness")
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// ============================================
// Field order
// ============================================

// AddField - Show a field at the end of the order
// POST /projects/:id/fields
func (h *ProjectHandler) AddField(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.AddField(c.Request.Context(), userID, c.Param("id"), req.FieldID)
	if err != nil {
		respondError(c, err, "Failed to add field")
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// ToggleField - Show or hide a field
// POST /projects/:id/fields/toggle
func (h *ProjectHandler) ToggleField(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.ToggleField(c.Request.Context(), userID, c.Param("id"), req.FieldID)
	if err != nil {
		respondError(c, err, "Failed to toggle field")
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// MoveField - Swap a field with its neighbour
// POST /projects/:id/fields/move
func (h *ProjectHandler) MoveField(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.MoveFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.MoveField(c.Request.Context(), userID, c.Param("id"), req.FieldID, fields.Direction(req.Direction))
	if err != nil {
		respondError(c, err, "Failed to move field")
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// SetFieldPosition - Put a field at a 1-based position
// PUT /projects/:id/fields/position
func (h *ProjectHandler) SetFieldPosition(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.FieldPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.SetFieldPosition(c.Request.Context(), userID, c.Param("id"), req.FieldID, req.Position)
	if err != nil {
		respondError(c, err, "Failed to move field")
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// ============================================
// Category changes
// ============================================

// RequestCategoryChange - Change category now or get a plan to confirm
// POST /projects/:id/category
func (h *ProjectHandler) RequestCategoryChange(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CategoryChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.projectService.RequestCategoryChange(c.Request.Context(), userID, c.Param("id"), req.Category)
	if err != nil {
		respondError(c, err, "Failed to change category")
		return
	}

	response := models.CategoryChangeResponse{
		Applied:              result.Applied,
		RequiresConfirmation: result.Token != "",
		Token:                result.Token,
		Plan:                 result.Plan,
	}
	if result.Token != "" {
		response.ExpiresAt = &result.ExpiresAt
	}
	if result.Project != nil {
		p := toProjectResponse(result.Project)
		response.Project = &p
	}

	status := http.StatusOK
	if response.RequiresConfirmation {
		status = http.StatusAccepted
	}
	c.JSON(status, response)
}

// ConfirmCategoryChange - Apply a pending category change
// POST /category-changes/confirm
func (h *ProjectHandler) ConfirmCategoryChange(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CategoryChangeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.ConfirmCategoryChange(c.Request.Context(), userID, req.Token)
	if err != nil {
		respondError(c, err, "Failed to confirm category change")
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// CancelCategoryChange - Drop a pending category change
// POST /category-changes/cancel
func (h *ProjectHandler) CancelCategoryChange(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CategoryChangeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectService.CancelCategoryChange(c.Request.Context(), userID, req.Token); err != nil {
		respondError(c, err, "Failed to cancel category change")
		return
	}

	c.Status(http.StatusNoContent)
}
