package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/models"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Catalog   *CatalogHandler
	User      *UserHandler
	Project   *ProjectHandler
	Tag       *TagHandler
	Favorite  *FavoriteHandler
	Analytics *AnalyticsHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Catalog:   &CatalogHandler{},
		User:      NewUserHandler(services.User),
		Project:   NewProjectHandler(services.Project),
		Tag:       NewTagHandler(services.Tag),
		Favorite:  NewFavoriteHandler(services.Favorite),
		Analytics: NewAnalyticsHandler(services.Analytics),
	}
}

// ============================================
// Error Mapping
// ============================================

// respondError maps service errors to status codes. Anything unexpected is
// attached to the context for the request logger and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, fields.ErrInvalidValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this resource"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrStaleMigration):
		c.JSON(http.StatusConflict, gin.H{"error": "Project changed since the category change was requested"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return def
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toProjectResponse(p *repository.Project) models.ProjectResponse {
	if p == nil {
		return models.ProjectResponse{}
	}
	data := map[string]any(p.CategoryData)
	if data == nil {
		data = map[string]any{}
	}
	return models.ProjectResponse{
		ID:              p.ID,
		OwnerID:         p.OwnerID,
		Title:           p.Title,
		Slug:            p.Slug,
		Description:     p.Description,
		Category:        p.Category,
		CategoryData:    data,
		FieldOrder:      safeStringSlice(p.FieldOrder),
		VisibleFields:   fields.VisibleFields(p.Category, p.FieldOrder),
		AvailableFields: fields.AvailableFields(p.Category, p.FieldOrder),
		Completeness:    fields.CalculateCompletenessScore(p.FieldOrder, p.CategoryData),
		Tags:            safeStringSlice(p.Tags),
		ThumbnailURL:    p.ThumbnailURL,
		URLLinks:        safeStringSlice(p.URLLinks),
		TotalFavorites:  p.TotalFavorites,
		DeletedAt:       p.DeletedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toProjectResponses(projects []*repository.Project) []models.ProjectResponse {
	response := make([]models.ProjectResponse, len(projects))
	for i, p := range projects {
		response[i] = toProjectResponse(p)
	}
	return response
}

func toTagResponse(t *repository.Tag) models.TagResponse {
	return models.TagResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		ProjectCount: t.ProjectCount,
		CreatedAt:    t.CreatedAt,
	}
}

func toSubmissionResponse(s *repository.TagSubmission) *models.TagSubmissionResponse {
	if s == nil {
		return nil
	}
	return &models.TagSubmissionResponse{
		ID:          s.ID,
		TagName:     s.TagName,
		ProjectID:   s.ProjectID,
		SubmitterID: s.SubmitterID,
		Description: s.Description,
		Status:      s.Status,
		AdminNotes:  s.AdminNotes,
		ReviewedBy:  s.ReviewedBy,
		ReviewedAt:  s.ReviewedAt,
		CreatedAt:   s.CreatedAt,
	}
}

func toSubmissionResponses(subs []*repository.TagSubmission) []*models.TagSubmissionResponse {
	response := make([]*models.TagSubmissionResponse, len(subs))
	for i, s := range subs {
		response[i] = toSubmissionResponse(s)
	}
	return response
}

func safeStringSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
