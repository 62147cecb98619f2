package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
)

type projectFixture struct {
	svc     ProjectService
	repo    *fakeProjectRepo
	kv      *fakeKV
	events  *recordingEvents
	clock   *fakeClock
	pending PendingMigrationStore
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()
	f := &projectFixture{
		repo:   newFakeProjectRepo(),
		kv:     newFakeKV(),
		events: &recordingEvents{},
		clock:  &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
	f.pending = NewPendingMigrationStore(f.kv, 30*time.Minute, f.clock.Now, nil)
	f.svc = NewProjectService(f.repo, f.pending, f.events, nil)
	return f
}

func (f *projectFixture) webProject(values fields.Values) *repository.Project {
	return f.repo.put(&repository.Project{
		OwnerID:      "owner",
		Title:        "Site",
		Slug:         "site",
		Category:     "web",
		FieldOrder:   []string{"techStack", "browserSupport"},
		CategoryData: values,
	})
}

func TestCreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		f := newProjectFixture(t)
		p, err := f.svc.Create(ctx, "owner", CreateProjectInput{Title: "  My Game!  ", Category: "game"})
		require.NoError(t, err)

		assert.Equal(t, "My Game!", p.Title)
		assert.Equal(t, "my-game", p.Slug)
		assert.Equal(t, fields.DefaultFieldOrder("game"), p.FieldOrder)
		assert.NotNil(t, p.CategoryData)
	})

	t.Run("empty category is other", func(t *testing.T) {
		f := newProjectFixture(t)
		p, err := f.svc.Create(ctx, "owner", CreateProjectInput{Title: "Thing"})
		require.NoError(t, err)
		assert.Equal(t, "other", p.Category)
	})

	t.Run("order is cleaned", func(t *testing.T) {
		f := newProjectFixture(t)
		p, err := f.svc.Create(ctx, "owner", CreateProjectInput{
			Title:      "Site",
			Category:   "web",
			FieldOrder: []string{"license", "gameEngine", "license", "browserSupport"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"license", "browserSupport"}, p.FieldOrder)
	})

	t.Run("duplicate slug gets a suffix", func(t *testing.T) {
		f := newProjectFixture(t)
		first, err := f.svc.Create(ctx, "owner", CreateProjectInput{Title: "Site"})
		require.NoError(t, err)
		second, err := f.svc.Create(ctx, "owner", CreateProjectInput{Title: "Site"})
		require.NoError(t, err)
		assert.NotEqual(t, first.Slug, second.Slug)
		assert.Contains(t, second.Slug, "site-")
	})

	t.Run("rejections", func(t *testing.T) {
		f := newProjectFixture(t)

		_, err := f.svc.Create(ctx, "owner", CreateProjectInput{Title: " "})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.svc.Create(ctx, "owner", CreateProjectInput{Title: "x", Category: "hardware"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.svc.Create(ctx, "owner", CreateProjectInput{
			Title: "x", Category: "web", CategoryData: fields.Values{"teamSize": float64(-1)},
		})
		assert.ErrorIs(t, err, fields.ErrInvalidValue)

		_, err = f.svc.Create(ctx, "owner", CreateProjectInput{
			Title: "x", Category: "web", CategoryData: fields.Values{"gameEngine": "godot"},
		})
		assert.ErrorIs(t, err, fields.ErrInvalidValue)
	})
}

func TestUpdateProjectKeepsSlugWhenTitleMapsToIt(t *testing.T) {
	f := newProjectFixture(t)
	p := f.webProject(nil)

	title := "SITE"
	updated, err := f.svc.Update(context.Background(), "owner", p.ID, UpdateProjectInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "site", updated.Slug)
	assert.Equal(t, []string{"updated"}, f.events.kinds())
}

func TestMutationsRequireOwner(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	p := f.webProject(nil)

	_, err := f.svc.AddField(ctx, "intruder", p.ID, "license")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.svc.UpdateCategoryData(ctx, "intruder", p.ID, fields.Values{"techStack": "Go"})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.svc.RequestCategoryChange(ctx, "intruder", p.ID, "mobile")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, f.svc.SoftDelete(ctx, "intruder", p.ID), ErrForbidden)

	_, err = f.svc.AddField(ctx, "owner", "missing", "license")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCategoryDataMerges(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	p := f.webProject(fields.Values{"browserSupport": []any{"chrome"}, "gameEngine": "godot"})

	got, err := f.svc.UpdateCategoryData(ctx, "owner", p.ID, fields.Values{"techStack": "Go"})
	require.NoError(t, err)

	stored := f.repo.get(p.ID)
	assert.Equal(t, "Go", stored.CategoryData["techStack"])
	assert.Equal(t, []any{"chrome"}, stored.CategoryData["browserSupport"])
	assert.Equal(t, "godot", stored.CategoryData["gameEngine"], "keys outside the category survive")
	assert.Equal(t, got.CategoryData, stored.CategoryData)

	assert.Equal(t, event{kind: "data", projectID: p.ID, score: 100}, f.events.last())
	assert.Equal(t, []fields.Values{{"techStack": "Go"}}, f.repo.patches, "only the patch is sent for merging")
}

func TestUpdateCategoryDataKeepsConcurrentKeys(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	p := f.webProject(nil)

	// another request stores a value after this one has loaded the project
	f.repo.beforeMerge = func() {
		f.repo.mutate(p.ID, func(stored *repository.Project) {
			stored.CategoryData = fields.Values{"license": "MIT"}
		})
	}

	got, err := f.svc.UpdateCategoryData(ctx, "owner", p.ID, fields.Values{"techStack": "Go"})
	require.NoError(t, err)
	assert.Equal(t, fields.Values{"license": "MIT", "techStack": "Go"}, got.CategoryData)
	assert.Equal(t, got.CategoryData, f.repo.get(p.ID).CategoryData)
}

func TestFieldOrderOperations(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	p := f.webProject(fields.Values{"techStack": "Go"})

	_, err := f.svc.AddField(ctx, "owner", p.ID, "license")
	require.NoError(t, err)
	_, err = f.svc.MoveField(ctx, "owner", p.ID, "license", fields.DirectionUp)
	require.NoError(t, err)
	_, err = f.svc.SetFieldPosition(ctx, "owner", p.ID, "license", 1)
	require.NoError(t, err)
	got, err := f.svc.ToggleField(ctx, "owner", p.ID, "browserSupport")
	require.NoError(t, err)

	assert.Equal(t, []string{"license", "techStack"}, got.FieldOrder)
	assert.Equal(t, got.FieldOrder, f.repo.get(p.ID).FieldOrder)
	assert.Equal(t, []string{"order", "order", "order", "order"}, f.events.kinds())
	assert.Equal(t, 50, f.events.last().score)

	t.Run("no-op publishes nothing", func(t *testing.T) {
		before := len(f.events.kinds())
		_, err := f.svc.MoveField(ctx, "owner", p.ID, "license", fields.DirectionUp)
		require.NoError(t, err)
		assert.Len(t, f.events.kinds(), before)
	})

	t.Run("foreign field", func(t *testing.T) {
		_, err := f.svc.AddField(ctx, "owner", p.ID, "gameEngine")
		assert.ErrorIs(t, err, fields.ErrInvalidValue)
	})

	t.Run("bad direction", func(t *testing.T) {
		_, err := f.svc.MoveField(ctx, "owner", p.ID, "license", fields.Direction("left"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRequestCategoryChangeAppliesWithoutHiddenData(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	p := f.webProject(fields.Values{"browserSupport": []any{}})

	res, err := f.svc.RequestCategoryChange(ctx, "owner", p.ID, "mobile")
	require.NoError(t, err)

	assert.True(t, res.Applied)
	assert.Empty(t, res.Token)
	stored := f.repo.get(p.ID)
	assert.Equal(t, "mobile", stored.Category)
	assert.Equal(t, []string{"techStack"}, stored.FieldOrder)
	assert.Contains(t, stored.CategoryData, "browserSupport")
	assert.Equal(t, event{kind: "category", projectID: p.ID, category: "mobile", order: []string{"techStack"}}, f.events.last())
}

func TestRequestCategoryChangeSameCategory(t *testing.T) {
	f := newProjectFixture(t)
	p := f.webProject(nil)

	res, err := f.svc.RequestCategoryChange(context.Background(), "owner", p.ID, "web")
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Nil(t, res.Plan)
	assert.Empty(t, f.events.kinds())
}

func TestCategoryChangeConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	p := f.webProject(fields.Values{"browserSupport": []any{"chrome", "firefox"}})

	res, err := f.svc.RequestCategoryChange(ctx, "owner", p.ID, "mobile")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.False(t, res.Applied)
	assert.Equal(t, f.clock.now.Add(30*time.Minute), res.ExpiresAt)
	require.Len(t, res.Plan.DataBearingLostFields(), 1)
	assert.Equal(t, "web", f.repo.get(p.ID).Category, "nothing changes before confirmation")

	t.Run("someone else cannot confirm", func(t *testing.T) {
		_, err := f.svc.ConfirmCategoryChange(ctx, "intruder", res.Token)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	got, err := f.svc.ConfirmCategoryChange(ctx, "owner", res.Token)
	require.NoError(t, err)
	assert.Equal(t, "mobile", got.Category)
	assert.Equal(t, []string{"techStack"}, got.FieldOrder)
	assert.Equal(t, []any{"chrome", "firefox"}, f.repo.get(p.ID).CategoryData["browserSupport"])

	_, err = f.svc.ConfirmCategoryChange(ctx, "owner", res.Token)
	assert.ErrorIs(t, err, ErrNotFound, "tokens are single use")
}

func TestCategoryChangeCancel(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	p := f.webProject(fields.Values{"browserSupport": []any{"edge"}})

	res, err := f.svc.RequestCategoryChange(ctx, "owner", p.ID, "cli")
	require.NoError(t, err)

	require.NoError(t, f.svc.CancelCategoryChange(ctx, "owner", res.Token))
	assert.Equal(t, "web", f.repo.get(p.ID).Category)

	_, err = f.svc.ConfirmCategoryChange(ctx, "owner", res.Token)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.CancelCategoryChange(ctx, "owner", res.Token), ErrNotFound)
}

func TestCategoryChangeStale(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	p := f.webProject(fields.Values{"browserSupport": []any{"edge"}})

	res, err := f.svc.RequestCategoryChange(ctx, "owner", p.ID, "cli")
	require.NoError(t, err)

	_, err = f.svc.AddField(ctx, "owner", p.ID, "license")
	require.NoError(t, err)

	_, err = f.svc.ConfirmCategoryChange(ctx, "owner", res.Token)
	assert.True(t, errors.Is(err, ErrStaleMigration))
	assert.Equal(t, "web", f.repo.get(p.ID).Category)
}

func TestCategoryChangeFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	f.kv.fail = true
	p := f.webProject(fields.Values{"browserSupport": []any{"edge"}})

	res, err := f.svc.RequestCategoryChange(ctx, "owner", p.ID, "game")
	require.NoError(t, err)

	f.clock.Advance(31 * time.Minute)
	_, err = f.svc.ConfirmCategoryChange(ctx, "owner", res.Token)
	assert.ErrorIs(t, err, ErrNotFound, "expired in memory")
	assert.Equal(t, 1, f.pending.Purge())
}

func TestRequestCategoryChangeUnknownCategory(t *testing.T) {
	f := newProjectFixture(t)
	p := f.webProject(nil)

	_, err := f.svc.RequestCategoryChange(context.Background(), "owner", p.ID, "hardware")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompletenessAndSoftDelete(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	p := f.webProject(fields.Values{"techStack": "Go"})

	b, err := f.svc.Completeness(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, b.Score)
	assert.Equal(t, []string{"browserSupport"}, b.Missing)

	require.NoError(t, f.svc.SoftDelete(ctx, "owner", p.ID))
	_, err = f.svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := f.svc.ListByOwner(ctx, "owner", true)
	require.NoError(t, err)
	assert.Len(t, deleted, 1)

	_, err = f.svc.Restore(ctx, "intruder", p.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	restored, err := f.svc.Restore(ctx, "owner", p.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)
	assert.Equal(t, []string{"deleted", "restored"}, f.events.kinds())
}

func TestPermanentDeleteNeedsTrash(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture(t)
	p := f.webProject(nil)

	assert.ErrorIs(t, f.svc.PermanentDelete(ctx, "owner", p.ID), ErrConflict)
	require.NoError(t, f.svc.SoftDelete(ctx, "owner", p.ID))
	assert.ErrorIs(t, f.svc.PermanentDelete(ctx, "intruder", p.ID), ErrForbidden)

	require.NoError(t, f.svc.PermanentDelete(ctx, "owner", p.ID))
	assert.Nil(t, f.repo.get(p.ID))
	assert.ErrorIs(t, f.svc.PermanentDelete(ctx, "owner", p.ID), ErrNotFound)
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":        "hello-world",
		"  --Go!! & Rust-- ": "go-rust",
		"ÜBER":               "ber",
		"!!!":                "project",
	}
	for in, want := range tests {
		assert.Equal(t, want, slugify(in), in)
	}
}
