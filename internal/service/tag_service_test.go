package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/cache"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/types"
)

type tagFixture struct {
	svc      TagService
	tags     *fakeTagRepo
	subs     *fakeSubmissionRepo
	projects *fakeProjectRepo
	events   *recordingEvents
	clock    *fakeClock
	project  *repository.Project
}

func newTagFixture(t *testing.T, known ...string) *tagFixture {
	t.Helper()
	f := &tagFixture{
		tags:     newFakeTagRepo(known...),
		projects: newFakeProjectRepo(),
		events:   &recordingEvents{},
		clock:    &fakeClock{now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	f.subs = &fakeSubmissionRepo{tags: f.tags, projects: f.projects}
	f.project = f.projects.put(&repository.Project{OwnerID: "owner", Title: "Site", Slug: "site", Category: "web"})
	f.svc = NewTagService(f.tags, f.subs, f.projects,
		cache.New[string, []*repository.Tag](5*time.Minute, f.clock.Now), f.events, nil)
	return f
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Go  ", "go"},
		{"Machine   Learning", "machine-learning"},
		{"a\tb\nc", "a-b-c"},
		{"", ""},
		{"this tag name is far too long to be kept whole", "this-tag-name-is-far-too-long"},
	}
	for _, tt := range tests {
		got := NormalizeTag(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.LessOrEqual(t, len([]rune(got)), maxTagLength)
	}
}

func TestTagListIsCached(t *testing.T) {
	ctx := context.Background()
	f := newTagFixture(t, "go", "rust")

	first, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	_, err = f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.tags.lists)

	f.clock.Advance(5 * time.Minute)
	_, err = f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.tags.lists, "expired entries reload")
}

func TestAttachKnownTag(t *testing.T) {
	ctx := context.Background()
	f := newTagFixture(t, "go")

	res, err := f.svc.AttachTag(ctx, "owner", f.project.ID, " GO ", nil)
	require.NoError(t, err)
	assert.True(t, res.Attached)
	assert.Nil(t, res.Submission)
	assert.Equal(t, []string{"go"}, f.projects.get(f.project.ID).Tags)

	res, err = f.svc.AttachTag(ctx, "owner", f.project.ID, "go", nil)
	require.NoError(t, err)
	assert.True(t, res.Attached)
	assert.Equal(t, []string{"go"}, f.projects.get(f.project.ID).Tags)

	require.NoError(t, f.svc.DetachTag(ctx, "owner", f.project.ID, "Go"))
	assert.Empty(t, f.projects.get(f.project.ID).Tags)
}

func TestAttachTagChecks(t *testing.T) {
	ctx := context.Background()
	f := newTagFixture(t, "go")

	_, err := f.svc.AttachTag(ctx, "owner", f.project.ID, "   ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.AttachTag(ctx, "intruder", f.project.ID, "go", nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.AttachTag(ctx, "owner", "missing", "go", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTagSubmissionApproval(t *testing.T) {
	ctx := context.Background()
	f := newTagFixture(t, "go")
	_, err := f.svc.List(ctx)
	require.NoError(t, err)

	desc := "WebAssembly projects"
	res, err := f.svc.AttachTag(ctx, "owner", f.project.ID, "Web Assembly", &desc)
	require.NoError(t, err)
	require.NotNil(t, res.Submission)
	assert.False(t, res.Attached)
	assert.Equal(t, "web-assembly", res.Submission.TagName)
	assert.Equal(t, types.SubmissionPending, res.Submission.Status)

	_, err = f.svc.AttachTag(ctx, "owner", f.project.ID, "web assembly", nil)
	assert.ErrorIs(t, err, ErrConflict, "one pending submission per project and tag")

	pending, err := f.svc.ListSubmissions(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := f.svc.ApproveSubmission(ctx, "admin", res.Submission.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, types.SubmissionApproved, approved.Status)
	assert.Equal(t, "admin", *approved.ReviewedBy)

	assert.Equal(t, []string{"web-assembly"}, f.projects.get(f.project.ID).Tags)
	tags, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2, "approval invalidates the cached list")
	assert.Equal(t, []string{"review:approved"}, f.events.kinds())

	_, err = f.svc.RejectSubmission(ctx, "admin", res.Submission.ID, nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestTagSubmissionApprovalFailureLeavesItPending(t *testing.T) {
	ctx := context.Background()
	f := newTagFixture(t)

	res, err := f.svc.AttachTag(ctx, "owner", f.project.ID, "wasm", nil)
	require.NoError(t, err)

	f.subs.approveErr = errors.New("connection reset")
	_, err = f.svc.ApproveSubmission(ctx, "admin", res.Submission.ID, nil)
	require.Error(t, err)

	stored, err := f.subs.FindByID(ctx, res.Submission.ID)
	require.NoError(t, err)
	assert.Equal(t, types.SubmissionPending, stored.Status)
	assert.Nil(t, f.tags.tags["wasm"])
	assert.Empty(t, f.projects.get(f.project.ID).Tags)
	assert.Empty(t, f.events.kinds())

	f.subs.approveErr = nil
	approved, err := f.svc.ApproveSubmission(ctx, "admin", res.Submission.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, types.SubmissionApproved, approved.Status)
	assert.Equal(t, []string{"wasm"}, f.projects.get(f.project.ID).Tags)
}

func TestTagSubmissionRejection(t *testing.T) {
	ctx := context.Background()
	f := newTagFixture(t)

	res, err := f.svc.AttachTag(ctx, "owner", f.project.ID, "spam", nil)
	require.NoError(t, err)

	notes := "too generic"
	rejected, err := f.svc.RejectSubmission(ctx, "admin", res.Submission.ID, &notes)
	require.NoError(t, err)
	assert.Equal(t, types.SubmissionRejected, rejected.Status)
	assert.Equal(t, &notes, rejected.AdminNotes)
	assert.Empty(t, f.projects.get(f.project.ID).Tags)

	mine, err := f.svc.ListMySubmissions(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.svc.ApproveSubmission(ctx, "admin", "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.ListSubmissions(ctx, "archived", 10, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
