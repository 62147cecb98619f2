package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/api/middleware"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/models"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/service"
)

// ============================================
// Favorite Handler
// ============================================

type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add - Favorite a project
// POST /projects/:id/favorite
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	if err := h.favoriteService.Add(c.Request.Context(), userID, projectID); err != nil {
		respondError(c, err, "Failed to add favorite")
		return
	}

	c.JSON(http.StatusOK, models.FavoriteStatusResponse{ProjectID: projectID, Favorite: true})
}

// Remove - Unfavorite a project
// DELETE /projects/:id/favorite
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	if err := h.favoriteService.Remove(c.Request.Context(), userID, projectID); err != nil {
		respondError(c, err, "Failed to remove favorite")
		return
	}

	c.JSON(http.StatusOK, models.FavoriteStatusResponse{ProjectID: projectID, Favorite: false})
}

// Status - Whether the caller favorited a project
// GET /projects/:id/favorite
func (h *FavoriteHandler) Status(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	fav, err := h.favoriteService.IsFavorite(c.Request.Context(), userID, projectID)
	if err != nil {
		respondError(c, err, "Failed to fetch favorite")
		return
	}

	c.JSON(http.StatusOK, models.FavoriteStatusResponse{ProjectID: projectID, Favorite: fav})
}

// List - List the caller's favorite projects
// GET /me/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	projects, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch favorites")
		return
	}

	c.JSON(http.StatusOK, toProjectResponses(projects))
}
