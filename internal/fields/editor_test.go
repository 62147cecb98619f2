package fields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	data       []Values
	orders     [][]string
	categories []string
	catOrders  [][]string
}

func (r *recorder) OnCategoryDataChange(v Values)     { r.data = append(r.data, v) }
func (r *recorder) OnFieldOrderChange(order []string) { r.orders = append(r.orders, order) }
func (r *recorder) OnCategoryChange(c string, order []string) {
	r.categories = append(r.categories, c)
	r.catOrders = append(r.catOrders, order)
}

func TestEditorCategoryChangeNeedsConfirmation(t *testing.T) {
	rec := &recorder{}
	values := Values{"browserSupport": []any{"chrome", "firefox"}}
	e := NewEditor("web", []string{"techStack", "browserSupport"}, values, rec)

	plan, err := e.RequestCategoryChange("mobile")
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, StateAwaitingConfirmation, e.State())
	assert.Equal(t, []FieldStatus{{ID: "browserSupport", Label: "Browser Support", HasData: true}}, plan.LostFields)
	assert.Empty(t, rec.categories, "nothing is applied before confirmation")
	assert.Equal(t, "web", e.Category())

	assert.ErrorIs(t, e.AddField("license"), ErrMigrationPending)
	_, err = e.RequestCategoryChange("game")
	assert.ErrorIs(t, err, ErrMigrationPending)

	require.NoError(t, e.ConfirmMigration(plan.NewFieldOrder))
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, []string{"mobile"}, rec.categories)
	assert.Equal(t, [][]string{{"techStack"}}, rec.catOrders)
	assert.Equal(t, []string{"techStack"}, e.FieldOrder())
	assert.Equal(t, []any{"chrome", "firefox"}, e.Values()["browserSupport"], "hidden data is kept")
}

func TestEditorCategoryChangeAppliesDirectly(t *testing.T) {
	rec := &recorder{}
	values := Values{"browserSupport": []any{}}
	e := NewEditor("web", []string{"techStack", "browserSupport"}, values, rec)

	plan, err := e.RequestCategoryChange("mobile")
	require.NoError(t, err)
	assert.Nil(t, plan)
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, []string{"mobile"}, rec.categories)
	assert.Equal(t, [][]string{{"techStack"}}, rec.catOrders)
	assert.Contains(t, e.Values(), "browserSupport")
}

func TestEditorSameCategoryIsNoop(t *testing.T) {
	rec := &recorder{}
	e := NewEditor("web", []string{"techStack"}, nil, rec)

	plan, err := e.RequestCategoryChange("web")
	require.NoError(t, err)
	assert.Nil(t, plan)
	assert.Empty(t, rec.categories)
}

func TestEditorUnknownCategoryResolvesToOther(t *testing.T) {
	t.Run("applied directly", func(t *testing.T) {
		rec := &recorder{}
		e := NewEditor("web", []string{"techStack"}, nil, rec)

		plan, err := e.RequestCategoryChange("hardware")
		require.NoError(t, err)
		assert.Nil(t, plan)
		assert.Equal(t, "other", e.Category())

		plan, err = e.RequestCategoryChange("other")
		require.NoError(t, err)
		assert.Nil(t, plan)
		assert.Equal(t, []string{"other"}, rec.categories)
	})

	t.Run("after confirmation", func(t *testing.T) {
		rec := &recorder{}
		values := Values{"browserSupport": []any{"chrome"}}
		e := NewEditor("web", []string{"techStack", "browserSupport"}, values, rec)

		plan, err := e.RequestCategoryChange("hardware")
		require.NoError(t, err)
		require.NotNil(t, plan)
		assert.Equal(t, CategoryOther, plan.ToCategory)

		require.NoError(t, e.ConfirmMigration(plan.NewFieldOrder))
		assert.Equal(t, "other", e.Category())
		assert.Equal(t, []string{"other"}, rec.categories)
	})

	t.Run("unknown starting category", func(t *testing.T) {
		rec := &recorder{}
		e := NewEditor("hardware", nil, nil, rec)
		assert.Equal(t, "other", e.Category())

		_, err := e.RequestCategoryChange("other")
		require.NoError(t, err)
		assert.Empty(t, rec.categories)
	})
}

func TestEditorCancel(t *testing.T) {
	rec := &recorder{}
	e := NewEditor("web", []string{"browserSupport"}, Values{"browserSupport": []any{"edge"}}, rec)

	assert.ErrorIs(t, e.CancelMigration(), ErrNoPendingMigration)
	assert.ErrorIs(t, e.ConfirmMigration(nil), ErrNoPendingMigration)

	_, err := e.RequestCategoryChange("cli")
	require.NoError(t, err)
	require.NoError(t, e.CancelMigration())

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, "web", e.Category())
	assert.Equal(t, []string{"browserSupport"}, e.FieldOrder())
	assert.Empty(t, rec.categories)
}

func TestEditorOrderOperations(t *testing.T) {
	rec := &recorder{}
	e := NewEditor("web", []string{"techStack"}, nil, rec)

	require.NoError(t, e.AddField("license"))
	require.NoError(t, e.AddField("demoUrl"))
	require.NoError(t, e.MoveField("demoUrl", DirectionUp))
	require.NoError(t, e.SetFieldPosition("license", 1))
	require.NoError(t, e.ToggleField("techStack"))

	assert.Equal(t, []string{"license", "demoUrl"}, e.FieldOrder())
	assert.Len(t, rec.orders, 5)
	assert.Equal(t, []string{"techStack", "license"}, rec.orders[0])
}

func TestEditorSetValue(t *testing.T) {
	rec := &recorder{}
	e := NewEditor("web", nil, Values{"gameEngine": "godot"}, rec)

	require.NoError(t, e.SetValue("browserSupport", []any{"safari"}))
	require.Len(t, rec.data, 1)
	assert.Equal(t, "godot", rec.data[0]["gameEngine"])

	err := e.SetValue("frontendFramework", "backbone")
	assert.True(t, errors.Is(err, ErrInvalidValue))

	err = e.SetValue("appStoreUrl", "https://apps.apple.com/x")
	assert.True(t, errors.Is(err, ErrInvalidValue), "not a web field")
	assert.Len(t, rec.data, 1)
}

func TestEditorSnapshot(t *testing.T) {
	e := NewEditor("web", []string{"techStack", "license"}, Values{"techStack": "Go"}, nil)
	snap := e.Snapshot()

	assert.Equal(t, "web", snap.Category)
	assert.Equal(t, 50, snap.Completeness.Score)
	assert.Nil(t, snap.Pending)

	snap.FieldOrder[0] = "changed"
	assert.Equal(t, "techStack", e.FieldOrder()[0])
}

func TestEditorStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "awaiting_confirmation", StateAwaitingConfirmation.String())
	assert.Equal(t, "EditorState(7)", EditorState(7).String())
}
