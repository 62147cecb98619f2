package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/db"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/types"
)

// ============================================
// Projects
// ============================================

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*repository.Project
	seq      int
	patches  []fields.Values

	// beforeMerge runs inside MergeCategoryData ahead of the merge.
	beforeMerge func()
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*repository.Project{}}
}

func cloneProject(p *repository.Project) *repository.Project {
	c := *p
	c.CategoryData = p.CategoryData.Clone()
	c.FieldOrder = slices.Clone(p.FieldOrder)
	c.Tags = slices.Clone(p.Tags)
	c.URLLinks = slices.Clone(p.URLLinks)
	return &c
}

func (r *fakeProjectRepo) put(p *repository.Project) *repository.Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("p%d", r.seq)
	}
	if p.CategoryData == nil {
		p.CategoryData = fields.Values{}
	}
	r.projects[p.ID] = cloneProject(p)
	return p
}

func (r *fakeProjectRepo) get(id string) *repository.Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.projects[id]; ok {
		return cloneProject(p)
	}
	return nil
}

func (r *fakeProjectRepo) Create(_ context.Context, p *repository.Project) error {
	r.put(p)
	return nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id string) (*repository.Project, error) {
	p := r.get(id)
	if p == nil || p.DeletedAt != nil {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProjectRepo) FindByIDIncludingDeleted(_ context.Context, id string) (*repository.Project, error) {
	return r.get(id), nil
}

func (r *fakeProjectRepo) FindBySlug(_ context.Context, slug string) (*repository.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		if p.Slug == slug && p.DeletedAt == nil {
			return cloneProject(p), nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projects {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProjectRepo) FindByOwnerID(_ context.Context, ownerID string, deleted bool) ([]*repository.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*repository.Project
	for _, p := range r.projects {
		if p.OwnerID == ownerID && (p.DeletedAt != nil) == deleted {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) List(_ context.Context, f repository.ProjectFilter) ([]*repository.Project, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*repository.Project
	for _, p := range r.projects {
		if p.DeletedAt != nil || (f.Category != "" && p.Category != f.Category) ||
			(f.Tag != "" && !slices.Contains(p.Tags, f.Tag)) {
			continue
		}
		out = append(out, cloneProject(p))
	}
	return out, len(out), nil
}

func (r *fakeProjectRepo) Update(_ context.Context, p *repository.Project) error {
	r.put(p)
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) mutate(id string, fn func(p *repository.Project)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.projects[id]; ok {
		fn(p)
	}
}

func (r *fakeProjectRepo) MergeCategoryData(_ context.Context, id string, patch fields.Values) (fields.Values, error) {
	if r.beforeMerge != nil {
		r.beforeMerge()
	}
	var merged fields.Values
	r.mutate(id, func(p *repository.Project) {
		if p.DeletedAt != nil {
			return
		}
		if p.CategoryData == nil {
			p.CategoryData = fields.Values{}
		}
		for k, v := range patch {
			p.CategoryData[k] = v
		}
		merged = p.CategoryData.Clone()
	})
	r.mu.Lock()
	r.patches = append(r.patches, patch.Clone())
	r.mu.Unlock()
	return merged, nil
}

func (r *fakeProjectRepo) UpdateFieldOrder(_ context.Context, id string, order []string) error {
	r.mutate(id, func(p *repository.Project) { p.FieldOrder = slices.Clone(order) })
	return nil
}

func (r *fakeProjectRepo) UpdateCategoryIfUnchanged(_ context.Context, id, fromCategory string, fromOrder []string, toCategory string, newOrder []string) (bool, error) {
	changed := false
	r.mutate(id, func(p *repository.Project) {
		if p.DeletedAt != nil || p.Category != fromCategory || !slices.Equal(p.FieldOrder, fromOrder) {
			return
		}
		p.Category = toCategory
		p.FieldOrder = slices.Clone(newOrder)
		changed = true
	})
	return changed, nil
}

func (r *fakeProjectRepo) AddTag(_ context.Context, id, tag string) error {
	r.mutate(id, func(p *repository.Project) {
		if !slices.Contains(p.Tags, tag) {
			p.Tags = append(p.Tags, tag)
		}
	})
	return nil
}

func (r *fakeProjectRepo) SetTags(_ context.Context, id string, tags []string) error {
	r.mutate(id, func(p *repository.Project) { p.Tags = slices.Clone(tags) })
	return nil
}

func (r *fakeProjectRepo) SoftDelete(_ context.Context, id string) error {
	now := time.Now()
	r.mutate(id, func(p *repository.Project) { p.DeletedAt = &now })
	return nil
}

func (r *fakeProjectRepo) Restore(_ context.Context, id string) error {
	r.mutate(id, func(p *repository.Project) { p.DeletedAt = nil })
	return nil
}

// ============================================
// Tags
// ============================================

type fakeTagRepo struct {
	tags  map[string]*repository.Tag
	lists int
}

func newFakeTagRepo(names ...string) *fakeTagRepo {
	r := &fakeTagRepo{tags: map[string]*repository.Tag{}}
	for _, n := range names {
		r.tags[n] = &repository.Tag{ID: "t-" + n, Name: n}
	}
	return r
}

func (r *fakeTagRepo) Create(_ context.Context, t *repository.Tag) error {
	if existing, ok := r.tags[t.Name]; ok {
		*t = *existing
		return nil
	}
	t.ID = "t-" + t.Name
	r.tags[t.Name] = t
	return nil
}

func (r *fakeTagRepo) FindByName(_ context.Context, name string) (*repository.Tag, error) {
	return r.tags[name], nil
}

func (r *fakeTagRepo) List(context.Context) ([]*repository.Tag, error) {
	r.lists++
	var out []*repository.Tag
	for _, t := range r.tags {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *repository.Tag) int {
		if a.Name < b.Name {
			return -1
		}
		return 1
	})
	return out, nil
}

func (r *fakeTagRepo) Delete(_ context.Context, id string) error {
	for name, t := range r.tags {
		if t.ID == id {
			delete(r.tags, name)
		}
	}
	return nil
}

type fakeSubmissionRepo struct {
	subs     []*repository.TagSubmission
	tags     *fakeTagRepo
	projects *fakeProjectRepo

	// approveErr makes Approve fail before anything is written, the way a
	// rolled back transaction leaves the rows.
	approveErr error
}

func (r *fakeSubmissionRepo) Create(_ context.Context, s *repository.TagSubmission) error {
	s.ID = fmt.Sprintf("s%d", len(r.subs)+1)
	s.Status = types.SubmissionPending
	s.CreatedAt = time.Now()
	c := *s
	r.subs = append(r.subs, &c)
	return nil
}

func (r *fakeSubmissionRepo) FindByID(_ context.Context, id string) (*repository.TagSubmission, error) {
	for _, s := range r.subs {
		if s.ID == id {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeSubmissionRepo) FindPendingForProject(_ context.Context, projectID, tagName string) (*repository.TagSubmission, error) {
	for _, s := range r.subs {
		if s.ProjectID == projectID && s.TagName == tagName && s.Status == types.SubmissionPending {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeSubmissionRepo) ListByStatus(_ context.Context, status string, limit, offset int) ([]*repository.TagSubmission, error) {
	var out []*repository.TagSubmission
	for _, s := range r.subs {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) ListBySubmitter(_ context.Context, submitterID string) ([]*repository.TagSubmission, error) {
	var out []*repository.TagSubmission
	for _, s := range r.subs {
		if s.SubmitterID == submitterID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) Review(_ context.Context, id, status, reviewerID string, notes *string) (bool, error) {
	for _, s := range r.subs {
		if s.ID == id && s.Status == types.SubmissionPending {
			s.Status = status
			s.ReviewedBy = &reviewerID
			s.AdminNotes = notes
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubmissionRepo) Approve(ctx context.Context, id, reviewerID string, notes *string) (bool, error) {
	if r.approveErr != nil {
		return false, r.approveErr
	}
	for _, s := range r.subs {
		if s.ID != id || s.Status != types.SubmissionPending {
			continue
		}
		s.Status = types.SubmissionApproved
		s.ReviewedBy = &reviewerID
		s.AdminNotes = notes
		_ = r.tags.Create(ctx, &repository.Tag{Name: s.TagName, Description: s.Description})
		_ = r.projects.AddTag(ctx, s.ProjectID, s.TagName)
		return true, nil
	}
	return false, nil
}

// ============================================
// Favorites & users
// ============================================

type fakeFavoriteRepo struct {
	projects *fakeProjectRepo
	favs     map[[2]string]bool
}

func (r *fakeFavoriteRepo) Add(_ context.Context, userID, projectID string) (bool, error) {
	key := [2]string{userID, projectID}
	if r.favs[key] {
		return false, nil
	}
	r.favs[key] = true
	r.projects.mutate(projectID, func(p *repository.Project) { p.TotalFavorites++ })
	return true, nil
}

func (r *fakeFavoriteRepo) Remove(_ context.Context, userID, projectID string) (bool, error) {
	key := [2]string{userID, projectID}
	if !r.favs[key] {
		return false, nil
	}
	delete(r.favs, key)
	r.projects.mutate(projectID, func(p *repository.Project) { p.TotalFavorites-- })
	return true, nil
}

func (r *fakeFavoriteRepo) Exists(_ context.Context, userID, projectID string) (bool, error) {
	return r.favs[[2]string{userID, projectID}], nil
}

func (r *fakeFavoriteRepo) ListProjectsByUser(_ context.Context, userID string) ([]*repository.Project, error) {
	var out []*repository.Project
	for key := range r.favs {
		if key[0] == userID {
			out = append(out, r.projects.get(key[1]))
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*repository.User
}

func (r *fakeUserRepo) Upsert(_ context.Context, u *repository.User) error {
	if existing, ok := r.users[u.ID]; ok {
		u.Role = existing.Role
	} else if u.Role == "" {
		u.Role = types.RoleUser
	}
	c := *u
	r.users[u.ID] = &c
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*repository.User, error) {
	if u, ok := r.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*repository.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id, role string) error {
	if u, ok := r.users[id]; ok {
		u.Role = role
	}
	return nil
}

// ============================================
// Events & cache
// ============================================

type event struct {
	kind      string
	projectID string
	category  string
	order     []string
	score     int
}

type recordingEvents struct {
	mu     sync.Mutex
	events []event
}

func (e *recordingEvents) add(ev event) {
	e.mu.Lock()
	e.events = append(e.events, ev)
	e.mu.Unlock()
}

func (e *recordingEvents) kinds() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, ev := range e.events {
		out = append(out, ev.kind)
	}
	return out
}

func (e *recordingEvents) last() event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events[len(e.events)-1]
}

func (e *recordingEvents) FieldOrderChanged(projectID string, order []string, score int, _ string) {
	e.add(event{kind: "order", projectID: projectID, order: order, score: score})
}

func (e *recordingEvents) CategoryChanged(projectID, category string, order []string, score int, _ string) {
	e.add(event{kind: "category", projectID: projectID, category: category, order: order, score: score})
}

func (e *recordingEvents) CategoryDataChanged(projectID string, _ map[string]interface{}, score int, _ string) {
	e.add(event{kind: "data", projectID: projectID, score: score})
}

func (e *recordingEvents) ProjectUpdated(projectID string, _ map[string]interface{}, _ string) {
	e.add(event{kind: "updated", projectID: projectID})
}

func (e *recordingEvents) ProjectDeleted(projectID string) {
	e.add(event{kind: "deleted", projectID: projectID})
}

func (e *recordingEvents) ProjectRestored(projectID string) {
	e.add(event{kind: "restored", projectID: projectID})
}

func (e *recordingEvents) TagSubmissionReviewed(_, _, _, status string) {
	e.add(event{kind: "review:" + status})
}

// fakeKV mimics db.RedisDB with JSON round-trips. fail makes every call
// return an error.
type fakeKV struct {
	data map[string][]byte
	fail bool
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string][]byte{}} }

var errKVDown = fmt.Errorf("connection refused")

func (k *fakeKV) SetCache(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if k.fail {
		return errKVDown
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	k.data[key] = b
	return nil
}

func (k *fakeKV) GetCache(_ context.Context, key string, dest interface{}) error {
	if k.fail {
		return errKVDown
	}
	b, ok := k.data[key]
	if !ok {
		return db.ErrCacheMiss
	}
	return json.Unmarshal(b, dest)
}

func (k *fakeKV) TakeCache(ctx context.Context, key string, dest interface{}) error {
	if err := k.GetCache(ctx, key, dest); err != nil {
		return err
	}
	delete(k.data, key)
	return nil
}

func (k *fakeKV) DeleteCache(_ context.Context, key string) error {
	if k.fail {
		return errKVDown
	}
	delete(k.data, key)
	return nil
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
