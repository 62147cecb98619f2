package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/api/middleware"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/models"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/service"
)

// ============================================
// Tag Handler
// ============================================

type TagHandler struct {
	tagService service.TagService
}

func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List - List approved tags with project counts
// GET /tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch tags")
		return
	}

	response := make([]models.TagResponse, len(tags))
	for i, t := range tags {
		response[i] = toTagResponse(t)
	}
	c.JSON(http.StatusOK, response)
}

// Attach - Attach a tag, or submit an unknown one for review
// POST /projects/:id/tags
func (h *TagHandler) Attach(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.AttachTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.tagService.AttachTag(c.Request.Context(), userID, c.Param("id"), req.Name, req.Description)
	if err != nil {
		respondError(c, err, "Failed to attach tag")
		return
	}

	status := http.StatusOK
	if result.Submission != nil {
		status = http.StatusAccepted
	}
	c.JSON(status, models.AttachTagResponse{
		Tag:        result.Tag,
		Attached:   result.Attached,
		Submission: toSubmissionResponse(result.Submission),
	})
}

// Detach - Remove a tag from a project
// DELETE /projects/:id/tags/:tag
func (h *TagHandler) Detach(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.tagService.DetachTag(c.Request.Context(), userID, c.Param("id"), c.Param("tag")); err != nil {
		respondError(c, err, "Failed to remove tag")
		return
	}

	c.Status(http.StatusNoContent)
}

// ============================================
// Submissions
// ============================================

// ListMySubmissions - List the caller's tag submissions
// GET /me/tag-submissions
func (h *TagHandler) ListMySubmissions(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	subs, err := h.tagService.ListMySubmissions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch submissions")
		return
	}

	c.JSON(http.StatusOK, toSubmissionResponses(subs))
}

// ListSubmissions - List submissions by status (admin)
// GET /admin/tag-submissions?status=pending
func (h *TagHandler) ListSubmissions(c *gin.Context) {
	subs, err := h.tagService.ListSubmissions(c.Request.Context(),
		c.Query("status"), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		respondError(c, err, "Failed to fetch submissions")
		return
	}

	c.JSON(http.StatusOK, toSubmissionResponses(subs))
}

// Approve - Approve a submission (admin)
// POST /admin/tag-submissions/:id/approve
func (h *TagHandler) Approve(c *gin.Context) {
	h.review(c, h.tagService.ApproveSubmission, "Failed to approve submission")
}

// Reject - Reject a submission (admin)
// POST /admin/tag-submissions/:id/reject
func (h *TagHandler) Reject(c *gin.Context) {
	h.review(c, h.tagService.RejectSubmission, "Failed to reject submission")
}

type reviewFunc func(ctx context.Context, adminID, id string, notes *string) (*repository.TagSubmission, error)

func (h *TagHandler) review(c *gin.Context, fn reviewFunc, failure string) {
	adminID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.ReviewSubmissionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	submission, err := fn(c.Request.Context(), adminID, c.Param("id"), req.AdminNotes)
	if err != nil {
		respondError(c, err, failure)
		return
	}

	c.JSON(http.StatusOK, toSubmissionResponse(submission))
}
