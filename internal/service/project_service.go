package service

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
)

// ============================================
// Project Service
// ============================================

type CreateProjectInput struct {
	Title        string
	Description  *string
	Category     string
	FieldOrder   []string
	CategoryData fields.Values
	ThumbnailURL *string
	URLLinks     []string
}

// UpdateProjectInput changes basic project details. Nil pointers keep the
// current value; a nil URLLinks keeps the current links.
type UpdateProjectInput struct {
	Title        *string
	Description  *string
	ThumbnailURL *string
	URLLinks     []string
}

// CategoryChangeResult reports what RequestCategoryChange did. When Applied
// is false and Token is set, the change waits for confirmation.
type CategoryChangeResult struct {
	Applied   bool
	Token     string
	ExpiresAt time.Time
	Plan      *fields.MigrationPlan
	Project   *repository.Project
}

type ProjectService interface {
	Create(ctx context.Context, ownerID string, in CreateProjectInput) (*repository.Project, error)
	GetByID(ctx context.Context, id string) (*repository.Project, error)
	GetBySlug(ctx context.Context, slug string) (*repository.Project, error)
	ListByOwner(ctx context.Context, ownerID string, deleted bool) ([]*repository.Project, error)
	ListPublic(ctx context.Context, filter repository.ProjectFilter) ([]*repository.Project, int, error)
	Update(ctx context.Context, userID, id string, in UpdateProjectInput) (*repository.Project, error)

	// Category metadata
	UpdateCategoryData(ctx context.Context, userID, id string, patch fields.Values) (*repository.Project, error)
	AddField(ctx context.Context, userID, id, fieldID string) (*repository.Project, error)
	ToggleField(ctx context.Context, userID, id, fieldID string) (*repository.Project, error)
	MoveField(ctx context.Context, userID, id, fieldID string, direction fields.Direction) (*repository.Project, error)
	SetFieldPosition(ctx context.Context, userID, id, fieldID string, position int) (*repository.Project, error)
	RequestCategoryChange(ctx context.Context, userID, id, category string) (*CategoryChangeResult, error)
	ConfirmCategoryChange(ctx context.Context, userID, token string) (*repository.Project, error)
	CancelCategoryChange(ctx context.Context, userID, token string) error
	Completeness(ctx context.Context, id string) (*fields.CompletenessBreakdown, error)

	// Soft delete
	SoftDelete(ctx context.Context, userID, id string) error
	Restore(ctx context.Context, userID, id string) (*repository.Project, error)
	// PermanentDelete removes a project that is already in the trash.
	PermanentDelete(ctx context.Context, userID, id string) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	pending     PendingMigrationStore
	events      ProjectEvents
	log         *zap.Logger
}

func NewProjectService(projectRepo repository.ProjectRepository, pending PendingMigrationStore, events ProjectEvents, log *zap.Logger) ProjectService {
	if events == nil {
		events = nopEvents{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &projectService{
		projectRepo: projectRepo,
		pending:     pending,
		events:      events,
		log:         log,
	}
}

func (s *projectService) Create(ctx context.Context, ownerID string, in CreateProjectInput) (*repository.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	category := in.Category
	if category == "" {
		category = string(fields.CategoryOther)
	}
	if !fields.IsKnownCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}

	order := fields.DefaultFieldOrder(category)
	if in.FieldOrder != nil {
		order = cleanOrder(category, in.FieldOrder)
	}

	data := in.CategoryData.Clone()
	if err := validatePatch(category, data); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, title, "")
	if err != nil {
		return nil, err
	}

	project := &repository.Project{
		OwnerID:      ownerID,
		Title:        title,
		Slug:         slug,
		Description:  in.Description,
		Category:     category,
		CategoryData: data,
		FieldOrder:   order,
		Tags:         []string{},
		ThumbnailURL: in.ThumbnailURL,
		URLLinks:     in.URLLinks,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*repository.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

func (s *projectService) GetBySlug(ctx context.Context, slug string) (*repository.Project, error) {
	project, err := s.projectRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

func (s *projectService) ListByOwner(ctx context.Context, ownerID string, deleted bool) ([]*repository.Project, error) {
	return s.projectRepo.FindByOwnerID(ctx, ownerID, deleted)
}

func (s *projectService) ListPublic(ctx context.Context, filter repository.ProjectFilter) ([]*repository.Project, int, error) {
	if filter.Category != "" && !fields.IsKnownCategory(filter.Category) {
		return nil, 0, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, filter.Category)
	}
	filter.Tag = NormalizeTag(filter.Tag)
	return s.projectRepo.List(ctx, filter)
}

func (s *projectService) Update(ctx context.Context, userID, id string, in UpdateProjectInput) (*repository.Project, error) {
	project, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		if title != project.Title {
			project.Title = title
			if project.Slug, err = s.uniqueSlug(ctx, title, project.Slug); err != nil {
				return nil, err
			}
		}
	}
	if in.Description != nil {
		project.Description = in.Description
	}
	if in.ThumbnailURL != nil {
		project.ThumbnailURL = in.ThumbnailURL
	}
	if in.URLLinks != nil {
		project.URLLinks = in.URLLinks
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	s.events.ProjectUpdated(project.ID, map[string]interface{}{
		"projectId": project.ID,
		"title":     project.Title,
		"slug":      project.Slug,
	}, userID)
	return project, nil
}

// ============================================
// Category Metadata
// ============================================

// UpdateCategoryData merges patch into the stored values. Keys are never
// removed, so values of hidden fields survive.
func (s *projectService) UpdateCategoryData(ctx context.Context, userID, id string, patch fields.Values) (*repository.Project, error) {
	project, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := validatePatch(project.Category, patch); err != nil {
		return nil, err
	}

	data, err := s.projectRepo.MergeCategoryData(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update category data: %w", err)
	}
	if data == nil {
		return nil, ErrNotFound
	}
	project.CategoryData = data

	s.events.CategoryDataChanged(id, data, score(project), userID)
	return project, nil
}

func (s *projectService) AddField(ctx context.Context, userID, id, fieldID string) (*repository.Project, error) {
	return s.changeOrder(ctx, userID, id, func(p *repository.Project) ([]string, error) {
		if _, ok := fields.GetFieldByID(p.Category, fieldID); !ok {
			return nil, unknownField(p.Category, fieldID)
		}
		return fields.AddField(p.FieldOrder, fieldID), nil
	})
}

func (s *projectService) ToggleField(ctx context.Context, userID, id, fieldID string) (*repository.Project, error) {
	return s.changeOrder(ctx, userID, id, func(p *repository.Project) ([]string, error) {
		if _, ok := fields.GetFieldByID(p.Category, fieldID); !ok && !slices.Contains(p.FieldOrder, fieldID) {
			return nil, unknownField(p.Category, fieldID)
		}
		return fields.ToggleField(p.FieldOrder, fieldID), nil
	})
}

func (s *projectService) MoveField(ctx context.Context, userID, id, fieldID string, direction fields.Direction) (*repository.Project, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: direction must be up or down", ErrInvalidInput)
	}
	return s.changeOrder(ctx, userID, id, func(p *repository.Project) ([]string, error) {
		return fields.MoveField(p.FieldOrder, fieldID, direction), nil
	})
}

func (s *projectService) SetFieldPosition(ctx context.Context, userID, id, fieldID string, position int) (*repository.Project, error) {
	return s.changeOrder(ctx, userID, id, func(p *repository.Project) ([]string, error) {
		return fields.SetFieldPosition(p.FieldOrder, fieldID, position), nil
	})
}

func (s *projectService) changeOrder(ctx context.Context, userID, id string, next func(*repository.Project) ([]string, error)) (*repository.Project, error) {
	project, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	order, err := next(project)
	if err != nil {
		return nil, err
	}
	if slices.Equal(order, project.FieldOrder) {
		return project, nil
	}

	if err := s.projectRepo.UpdateFieldOrder(ctx, id, order); err != nil {
		return nil, fmt.Errorf("failed to update field order: %w", err)
	}
	project.FieldOrder = order

	s.events.FieldOrderChanged(id, order, score(project), userID)
	return project, nil
}

// RequestCategoryChange applies the change at once unless it would hide a
// field that holds data. Then the plan is parked under a token until the
// owner confirms or cancels it.
func (s *projectService) RequestCategoryChange(ctx context.Context, userID, id, category string) (*CategoryChangeResult, error) {
	if !fields.IsKnownCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	project, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if project.Category == category {
		return &CategoryChangeResult{Project: project}, nil
	}

	plan := fields.AnalyzeFieldMigration(project.Category, category, project.FieldOrder, project.CategoryData)
	if !plan.RequiresConfirmation() {
		if err := s.applyCategory(ctx, userID, project, category, plan.NewFieldOrder); err != nil {
			return nil, err
		}
		return &CategoryChangeResult{Applied: true, Plan: &plan, Project: project}, nil
	}

	change := &PendingCategoryChange{
		Token:         uuid.NewString(),
		ProjectID:     project.ID,
		OwnerID:       project.OwnerID,
		FromCategory:  project.Category,
		FromOrder:     slices.Clone(project.FieldOrder),
		ToCategory:    category,
		NewFieldOrder: plan.NewFieldOrder,
		ExpiresAt:     s.pending.Now().Add(s.pending.TTL()),
	}
	if err := s.pending.Save(ctx, change); err != nil {
		return nil, fmt.Errorf("failed to store pending category change: %w", err)
	}

	s.log.Debug("category change awaiting confirmation",
		zap.String("project_id", project.ID),
		zap.String("from", change.FromCategory),
		zap.String("to", change.ToCategory),
		zap.Int("lost_fields", len(plan.DataBearingLostFields())))

	return &CategoryChangeResult{
		Token:     change.Token,
		ExpiresAt: change.ExpiresAt,
		Plan:      &plan,
		Project:   project,
	}, nil
}

func (s *projectService) ConfirmCategoryChange(ctx context.Context, userID, token string) (*repository.Project, error) {
	change, err := s.pendingFor(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	// Take so a token can only be confirmed once.
	if change, err = s.pending.Take(ctx, token); err != nil {
		return nil, err
	}
	if change == nil {
		return nil, ErrNotFound
	}

	project, err := s.owned(ctx, userID, change.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Category != change.FromCategory || !slices.Equal(project.FieldOrder, change.FromOrder) {
		return nil, ErrStaleMigration
	}

	if err := s.applyCategory(ctx, userID, project, change.ToCategory, change.NewFieldOrder); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) CancelCategoryChange(ctx context.Context, userID, token string) error {
	if _, err := s.pendingFor(ctx, userID, token); err != nil {
		return err
	}
	return s.pending.Delete(ctx, token)
}

func (s *projectService) pendingFor(ctx context.Context, userID, token string) (*PendingCategoryChange, error) {
	change, err := s.pending.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if change == nil {
		return nil, ErrNotFound
	}
	if change.OwnerID != userID {
		return nil, ErrForbidden
	}
	return change, nil
}

func (s *projectService) applyCategory(ctx context.Context, userID string, project *repository.Project, category string, order []string) error {
	ok, err := s.projectRepo.UpdateCategoryIfUnchanged(ctx, project.ID, project.Category, project.FieldOrder, category, order)
	if err != nil {
		return fmt.Errorf("failed to change category: %w", err)
	}
	if !ok {
		return ErrStaleMigration
	}

	s.log.Info("project category changed",
		zap.String("project_id", project.ID),
		zap.String("from", project.Category),
		zap.String("to", category))

	project.Category = category
	project.FieldOrder = order
	s.events.CategoryChanged(project.ID, category, order, score(project), userID)
	return nil
}

func (s *projectService) Completeness(ctx context.Context, id string) (*fields.CompletenessBreakdown, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b := fields.CompletenessDetails(project.FieldOrder, project.CategoryData)
	return &b, nil
}

// ============================================
// Soft Delete
// ============================================

func (s *projectService) SoftDelete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.projectRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.events.ProjectDeleted(id)
	return nil
}

func (s *projectService) Restore(ctx context.Context, userID, id string) (*repository.Project, error) {
	project, err := s.projectRepo.FindByIDIncludingDeleted(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	if project.OwnerID != userID {
		return nil, ErrForbidden
	}
	if project.DeletedAt == nil {
		return project, nil
	}

	if err := s.projectRepo.Restore(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to restore project: %w", err)
	}
	project.DeletedAt = nil
	s.events.ProjectRestored(id)
	return project, nil
}

func (s *projectService) PermanentDelete(ctx context.Context, userID, id string) error {
	project, err := s.projectRepo.FindByIDIncludingDeleted(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}
	if project.OwnerID != userID {
		return ErrForbidden
	}
	if project.DeletedAt == nil {
		return fmt.Errorf("%w: move the project to the trash first", ErrConflict)
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.log.Info("project permanently deleted", zap.String("project_id", id))
	return nil
}

// ============================================
// Helpers
// ============================================

func (s *projectService) owned(ctx context.Context, userID, id string) (*repository.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, ErrForbidden
	}
	return project, nil
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if len(slug) > 60 {
		slug = strings.TrimRight(slug[:60], "-")
	}
	if slug == "" {
		slug = "project"
	}
	return slug
}

// uniqueSlug derives a free slug from title. current is the caller's own
// slug and counts as free.
func (s *projectService) uniqueSlug(ctx context.Context, title, current string) (string, error) {
	base := slugify(title)
	slug := base
	for range 5 {
		if slug == current {
			return slug, nil
		}
		exists, err := s.projectRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = base + "-" + uuid.NewString()[:8]
	}
	return "", fmt.Errorf("%w: could not find a free slug for %q", ErrConflict, title)
}

// cleanOrder drops duplicates and ids that are not fields of category.
func cleanOrder(category string, order []string) []string {
	out := make([]string, 0, len(order))
	for _, id := range fields.ReconcileOrder(category, order) {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// validatePatch rejects ids outside category and values that do not fit
// their field definition.
func validatePatch(category string, patch fields.Values) error {
	for id := range patch {
		if _, ok := fields.GetFieldByID(category, id); !ok {
			return unknownField(category, id)
		}
	}
	return fields.ValidateValues(category, patch)
}

func unknownField(category, fieldID string) error {
	return &fields.ValidationError{FieldID: fieldID, Reason: fmt.Sprintf("not a %s field", category)}
}

func score(p *repository.Project) int {
	return fields.CalculateCompletenessScore(p.FieldOrder, p.CategoryData)
}
