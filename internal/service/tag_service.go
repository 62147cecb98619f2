package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/cache"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/types"
)

const (
	maxTagLength = 30
	allTagsKey   = "all"
)

// NormalizeTag lowercases and trims name, joins inner whitespace with "-"
// and cuts the result to the maximum tag length.
func NormalizeTag(name string) string {
	tag := strings.Join(strings.Fields(strings.ToLower(name)), "-")
	if r := []rune(tag); len(r) > maxTagLength {
		tag = strings.TrimRight(string(r[:maxTagLength]), "-")
	}
	return tag
}

// ============================================
// Tag Service
// ============================================

// AttachTagResult tells whether the tag went straight onto the project or
// was queued for review as a submission.
type AttachTagResult struct {
	Tag        string
	Attached   bool
	Submission *repository.TagSubmission
}

type TagService interface {
	List(ctx context.Context) ([]*repository.Tag, error)
	WarmCache(ctx context.Context) error
	AttachTag(ctx context.Context, userID, projectID, name string, description *string) (*AttachTagResult, error)
	DetachTag(ctx context.Context, userID, projectID, name string) error

	// Submissions
	ListSubmissions(ctx context.Context, status string, limit, offset int) ([]*repository.TagSubmission, error)
	ListMySubmissions(ctx context.Context, userID string) ([]*repository.TagSubmission, error)
	ApproveSubmission(ctx context.Context, adminID, id string, notes *string) (*repository.TagSubmission, error)
	RejectSubmission(ctx context.Context, adminID, id string, notes *string) (*repository.TagSubmission, error)
}

type tagService struct {
	tagRepo        repository.TagRepository
	submissionRepo repository.TagSubmissionRepository
	projectRepo    repository.ProjectRepository
	tags           *cache.Cache[string, []*repository.Tag]
	events         ProjectEvents
	log            *zap.Logger
}

func NewTagService(
	tagRepo repository.TagRepository,
	submissionRepo repository.TagSubmissionRepository,
	projectRepo repository.ProjectRepository,
	tags *cache.Cache[string, []*repository.Tag],
	events ProjectEvents,
	log *zap.Logger,
) TagService {
	if events == nil {
		events = nopEvents{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &tagService{
		tagRepo:        tagRepo,
		submissionRepo: submissionRepo,
		projectRepo:    projectRepo,
		tags:           tags,
		events:         events,
		log:            log,
	}
}

func (s *tagService) List(ctx context.Context) ([]*repository.Tag, error) {
	if tags, ok := s.tags.Get(allTagsKey); ok {
		return tags, nil
	}
	return s.load(ctx)
}

// WarmCache reloads the tag list so readers rarely hit the database.
func (s *tagService) WarmCache(ctx context.Context) error {
	_, err := s.load(ctx)
	return err
}

func (s *tagService) load(ctx context.Context) ([]*repository.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	if tags == nil {
		tags = []*repository.Tag{}
	}
	s.tags.Set(allTagsKey, tags)
	return tags, nil
}

// AttachTag adds a known tag to the project. Unknown tags become pending
// submissions for an admin to review.
func (s *tagService) AttachTag(ctx context.Context, userID, projectID, name string, description *string) (*AttachTagResult, error) {
	tag := NormalizeTag(name)
	if tag == "" {
		return nil, fmt.Errorf("%w: tag name is required", ErrInvalidInput)
	}
	project, err := s.ownedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if slices.Contains(project.Tags, tag) {
		return &AttachTagResult{Tag: tag, Attached: true}, nil
	}

	existing, err := s.tagRepo.FindByName(ctx, tag)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.projectRepo.AddTag(ctx, projectID, tag); err != nil {
			return nil, fmt.Errorf("failed to add tag: %w", err)
		}
		s.tags.Delete(allTagsKey)
		return &AttachTagResult{Tag: tag, Attached: true}, nil
	}

	pending, err := s.submissionRepo.FindPendingForProject(ctx, projectID, tag)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ErrConflict
	}

	submission := &repository.TagSubmission{
		TagName:     tag,
		ProjectID:   projectID,
		SubmitterID: userID,
		Description: description,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create tag submission: %w", err)
	}
	s.log.Info("tag submitted for review", zap.String("tag", tag), zap.String("project_id", projectID))
	return &AttachTagResult{Tag: tag, Submission: submission}, nil
}

func (s *tagService) DetachTag(ctx context.Context, userID, projectID, name string) error {
	tag := NormalizeTag(name)
	project, err := s.ownedProject(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if !slices.Contains(project.Tags, tag) {
		return nil
	}
	tags := slices.DeleteFunc(slices.Clone(project.Tags), func(t string) bool { return t == tag })
	if err := s.projectRepo.SetTags(ctx, projectID, tags); err != nil {
		return fmt.Errorf("failed to remove tag: %w", err)
	}
	s.tags.Delete(allTagsKey)
	return nil
}

// ============================================
// Submissions
// ============================================

func (s *tagService) ListSubmissions(ctx context.Context, status string, limit, offset int) ([]*repository.TagSubmission, error) {
	if status == "" {
		status = types.SubmissionPending
	}
	if !types.IsValidSubmissionStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.submissionRepo.ListByStatus(ctx, status, limit, max(offset, 0))
}

func (s *tagService) ListMySubmissions(ctx context.Context, userID string) ([]*repository.TagSubmission, error) {
	return s.submissionRepo.ListBySubmitter(ctx, userID)
}

// ApproveSubmission creates the tag, attaches it to the submitting project
// and drops the cached tag list. The three writes commit together.
func (s *tagService) ApproveSubmission(ctx context.Context, adminID, id string, notes *string) (*repository.TagSubmission, error) {
	submission, err := s.pendingSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.submissionRepo.Approve(ctx, id, adminID, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to approve submission: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: submission was reviewed concurrently", ErrConflict)
	}
	s.tags.Clear()

	s.reviewed(submission, adminID, types.SubmissionApproved, notes)
	return submission, nil
}

func (s *tagService) RejectSubmission(ctx context.Context, adminID, id string, notes *string) (*repository.TagSubmission, error) {
	submission, err := s.pendingSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.submissionRepo.Review(ctx, id, types.SubmissionRejected, adminID, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to review submission: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: submission was reviewed concurrently", ErrConflict)
	}

	s.reviewed(submission, adminID, types.SubmissionRejected, notes)
	return submission, nil
}

func (s *tagService) pendingSubmission(ctx context.Context, id string) (*repository.TagSubmission, error) {
	submission, err := s.submissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, ErrNotFound
	}
	if submission.Status != types.SubmissionPending {
		return nil, fmt.Errorf("%w: submission already %s", ErrConflict, submission.Status)
	}
	return submission, nil
}

func (s *tagService) reviewed(submission *repository.TagSubmission, adminID, status string, notes *string) {
	submission.Status = status
	submission.AdminNotes = notes
	submission.ReviewedBy = &adminID
	s.log.Info("tag submission reviewed",
		zap.String("submission_id", submission.ID), zap.String("tag", submission.TagName), zap.String("status", status))
	s.events.TagSubmissionReviewed(submission.SubmitterID, submission.ID, submission.TagName, status)
}

func (s *tagService) ownedProject(ctx context.Context, userID, projectID string) (*repository.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}
	if project.OwnerID != userID {
		return nil, ErrForbidden
	}
	return project, nil
}
