package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
)

type fakeAnalyticsRepo struct {
	states []repository.ProjectCategoryState
	saved  []repository.AnalyticsSnapshot
	since  time.Time
}

func (r *fakeAnalyticsRepo) Totals(context.Context) (*repository.PlatformTotals, error) {
	return &repository.PlatformTotals{Projects: len(r.states), Users: 4, Tags: 7, PendingSubmissions: 1, Favorites: 9}, nil
}

func (r *fakeAnalyticsRepo) CategoryCounts(context.Context) ([]repository.CategoryCount, error) {
	return []repository.CategoryCount{{Category: "web", Count: 2}, {Category: "cli", Count: 1}}, nil
}

func (r *fakeAnalyticsRepo) TopTags(_ context.Context, limit int) ([]repository.TagCount, error) {
	return []repository.TagCount{{Tag: "go", Count: 3}}, nil
}

func (r *fakeAnalyticsRepo) ListCategoryState(context.Context) ([]repository.ProjectCategoryState, error) {
	return r.states, nil
}

func (r *fakeAnalyticsRepo) SaveSnapshot(_ context.Context, s *repository.AnalyticsSnapshot) error {
	r.saved = append(r.saved, *s)
	return nil
}

func (r *fakeAnalyticsRepo) ListSnapshots(_ context.Context, since time.Time) ([]repository.AnalyticsSnapshot, error) {
	r.since = since
	return r.saved, nil
}

func analyticsStates() []repository.ProjectCategoryState {
	return []repository.ProjectCategoryState{
		// 100
		{ID: "a", Category: "web", FieldOrder: []string{"techStack"}, CategoryData: fields.Values{"techStack": "Go"}},
		// 50
		{ID: "b", Category: "web", FieldOrder: []string{"techStack", "license"}, CategoryData: fields.Values{"license": "mit"}},
		// 33
		{ID: "c", Category: "cli", FieldOrder: []string{"techStack", "license", "demoUrl"}, CategoryData: fields.Values{"techStack": "Rust"}},
	}
}

func TestAnalyticsOverview(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 0, 5, 0, 0, time.UTC)}
	svc := NewAnalyticsService(&fakeAnalyticsRepo{states: analyticsStates()}, clock.Now)

	o, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, o.Totals.Projects)
	assert.Len(t, o.Categories, 2)
	require.Len(t, o.Completeness, 2)
	assert.Equal(t, "cli", o.Completeness[0].Category)
	assert.True(t, decimal.NewFromInt(33).Equal(o.Completeness[0].AverageCompleteness))
	assert.Equal(t, 2, o.Completeness[1].Projects)
	assert.True(t, decimal.NewFromInt(75).Equal(o.Completeness[1].AverageCompleteness))
	assert.Equal(t, "61", o.AverageCompleteness.String())
	assert.Equal(t, clock.now, o.GeneratedAt)
}

func TestAnalyticsAverageRounding(t *testing.T) {
	states := []repository.ProjectCategoryState{
		{Category: "web", FieldOrder: []string{"techStack"}, CategoryData: fields.Values{"techStack": "Go"}},
		{Category: "web", FieldOrder: []string{"techStack"}},
		{Category: "web", FieldOrder: []string{"techStack"}},
	}
	perCategory, overall := averageCompleteness(states)
	assert.Equal(t, "33.33", overall.String())
	assert.Equal(t, "33.33", perCategory[0].AverageCompleteness.String())

	_, empty := averageCompleteness(nil)
	assert.True(t, empty.IsZero())
}

func TestAnalyticsSnapshot(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 0, 5, 0, 0, time.UTC)}
	repo := &fakeAnalyticsRepo{states: analyticsStates()}
	svc := NewAnalyticsService(repo, clock.Now)

	snap, err := svc.TakeSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), snap.Day)
	assert.Equal(t, 3, snap.TotalProjects)
	assert.Equal(t, 9, snap.TotalFavorites)
	require.Len(t, repo.saved, 1)

	_, err = svc.ListSnapshots(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, clock.now.AddDate(0, 0, -30), repo.since)
}
