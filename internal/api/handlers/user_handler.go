package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/api/middleware"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/models"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/service"
)

// ============================================
// User Handler
// ============================================

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetCurrentUser - The caller's profile
// GET /me
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// GetByUsername - Public profile lookup
// GET /users/:username
func (h *UserHandler) GetByUsername(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// SetRole - Promote or demote a user (admin)
// PUT /admin/users/:id/role
func (h *UserHandler) SetRole(c *gin.Context) {
	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.SetRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err, "Failed to update role")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
