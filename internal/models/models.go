package models

import (
	"time"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
)

// ============================================
// User DTOs
// ============================================

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  *string   `json:"fullName,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// ============================================
// Field catalog DTOs
// ============================================

type CategoryResponse struct {
	Value       string                   `json:"value"`
	Label       string                   `json:"label"`
	Description string                   `json:"description"`
	Fields      []fields.FieldDefinition `json:"fields,omitempty"`
}

type MigrationPreviewResponse struct {
	Plan                 fields.MigrationPlan `json:"plan"`
	RequiresConfirmation bool                 `json:"requiresConfirmation"`
}

// ============================================
// Project DTOs
// ============================================

type CreateProjectRequest struct {
	Title        string         `json:"title" binding:"required,min=1,max=120"`
	Description  *string        `json:"description,omitempty"`
	Category     string         `json:"category"`
	FieldOrder   []string       `json:"fieldOrder,omitempty"`
	CategoryData map[string]any `json:"categoryData,omitempty"`
	ThumbnailURL *string        `json:"thumbnailUrl,omitempty" binding:"omitempty,url"`
	URLLinks     []string       `json:"urlLinks,omitempty" binding:"omitempty,dive,url"`
}

type UpdateProjectRequest struct {
	Title        *string  `json:"title,omitempty" binding:"omitempty,min=1,max=120"`
	Description  *string  `json:"description,omitempty"`
	ThumbnailURL *string  `json:"thumbnailUrl,omitempty" binding:"omitempty,url"`
	URLLinks     []string `json:"urlLinks,omitempty" binding:"omitempty,dive,url"`
}

type ProjectResponse struct {
	ID              string                   `json:"id"`
	OwnerID         string                   `json:"ownerId"`
	Title           string                   `json:"title"`
	Slug            string                   `json:"slug"`
	Description     *string                  `json:"description,omitempty"`
	Category        string                   `json:"category"`
	CategoryData    map[string]any           `json:"categoryData"`
	FieldOrder      []string                 `json:"fieldOrder"`
	VisibleFields   []fields.FieldDefinition `json:"visibleFields"`
	AvailableFields []fields.FieldDefinition `json:"availableFields,omitempty"`
	Completeness    int                      `json:"completeness"`
	Tags            []string                 `json:"tags"`
	ThumbnailURL    *string                  `json:"thumbnailUrl,omitempty"`
	URLLinks        []string                 `json:"urlLinks"`
	TotalFavorites  int                      `json:"totalFavorites"`
	DeletedAt       *time.Time               `json:"deletedAt,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type UpdateCategoryDataRequest struct {
	Data map[string]any `json:"data" binding:"required"`
}

// ============================================
// Field order DTOs
// ============================================

type FieldRequest struct {
	FieldID string `json:"fieldId" binding:"required"`
}

type MoveFieldRequest struct {
	FieldID   string `json:"fieldId" binding:"required"`
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

type FieldPositionRequest struct {
	FieldID  string `json:"fieldId" binding:"required"`
	Position int    `json:"position" binding:"required,min=1"`
}

// ============================================
// Category change DTOs
// ============================================

type CategoryChangeRequest struct {
	Category string `json:"category" binding:"required"`
}

type CategoryChangeTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type CategoryChangeResponse struct {
	Applied              bool                  `json:"applied"`
	RequiresConfirmation bool                  `json:"requiresConfirmation"`
	Token                string                `json:"token,omitempty"`
	ExpiresAt            *time.Time            `json:"expiresAt,omitempty"`
	Plan                 *fields.MigrationPlan `json:"plan,omitempty"`
	Project              *ProjectResponse      `json:"project,omitempty"`
}

// ============================================
// Tag DTOs
// ============================================

type TagResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	ProjectCount int       `json:"projectCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AttachTagRequest struct {
	Name        string  `json:"name" binding:"required,max=60"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=500"`
}

type AttachTagResponse struct {
	Tag        string                 `json:"tag"`
	Attached   bool                   `json:"attached"`
	Submission *TagSubmissionResponse `json:"submission,omitempty"`
}

type TagSubmissionResponse struct {
	ID          string     `json:"id"`
	TagName     string     `json:"tagName"`
	ProjectID   string     `json:"projectId"`
	SubmitterID string     `json:"submitterId"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	AdminNotes  *string    `json:"adminNotes,omitempty"`
	ReviewedBy  *string    `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type ReviewSubmissionRequest struct {
	AdminNotes *string `json:"adminNotes,omitempty" binding:"omitempty,max=1000"`
}

// ============================================
// Favorite DTOs
// ============================================

type FavoriteStatusResponse struct {
	ProjectID string `json:"projectId"`
	Favorite  bool   `json:"favorite"`
}
