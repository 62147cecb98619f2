package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
)

type Project struct {
	ID             string
	OwnerID        string
	Title          string
	Slug           string
	Description    *string
	Category       string
	CategoryData   fields.Values // ✓ never pruned: hidden fields keep their values
	FieldOrder     []string      // ✓ visible fields in display order
	Tags           []string
	ThumbnailURL   *string
	URLLinks       []string
	TotalFavorites int
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProjectFilter narrows public project listings.
type ProjectFilter struct {
	Category string
	Tag      string
	OwnerID  string
	Search   string
	Limit    int
	Offset   int
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	FindByIDIncludingDeleted(ctx context.Context, id string) (*Project, error)
	FindBySlug(ctx context.Context, slug string) (*Project, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindByOwnerID(ctx context.Context, ownerID string, deleted bool) ([]*Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*Project, int, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error

	// Category metadata
	MergeCategoryData(ctx context.Context, id string, patch fields.Values) (fields.Values, error)
	UpdateFieldOrder(ctx context.Context, id string, order []string) error
	UpdateCategoryIfUnchanged(ctx context.Context, id, fromCategory string, fromOrder []string, toCategory string, newOrder []string) (bool, error)

	// Tags
	AddTag(ctx context.Context, id, tag string) error
	SetTags(ctx context.Context, id string, tags []string) error

	// Soft delete
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type pgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgProjectRepository{pool: pool}
}

const projectColumns = `id, owner_id, title, slug, description, category, category_data, field_order,
	tags, thumbnail_url, url_links, total_favorites, deleted_at, created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Slug, &p.Description, &p.Category, &p.CategoryData, &p.FieldOrder,
		&p.Tags, &p.ThumbnailURL, &p.URLLinks, &p.TotalFavorites, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.CategoryData == nil {
		p.CategoryData = fields.Values{}
	}
	return p, nil
}

func (r *pgProjectRepository) Create(ctx context.Context, project *Project) error {
	if project.CategoryData == nil {
		project.CategoryData = fields.Values{}
	}
	query := `
		INSERT INTO projects (owner_id, title, slug, description, category, category_data, field_order, tags, thumbnail_url, url_links)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, total_favorites, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		project.OwnerID, project.Title, project.Slug, project.Description, project.Category,
		project.CategoryData, nonNil(project.FieldOrder), nonNil(project.Tags),
		project.ThumbnailURL, nonNil(project.URLLinks),
	).Scan(&project.ID, &project.TotalFavorites, &project.CreatedAt, &project.UpdatedAt)
}

func (r *pgProjectRepository) FindByID(ctx context.Context, id string) (*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND deleted_at IS NULL`
	p, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *pgProjectRepository) FindByIDIncludingDeleted(ctx context.Context, id string) (*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *pgProjectRepository) FindBySlug(ctx context.Context, slug string) (*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE slug = $1 AND deleted_at IS NULL`
	p, err := scanProject(r.pool.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *pgProjectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM projects WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (r *pgProjectRepository) FindByOwnerID(ctx context.Context, ownerID string, deleted bool) ([]*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = $1 AND (deleted_at IS NOT NULL) = $2 ORDER BY updated_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID, deleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (r *pgProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]*Project, int, error) {
	where := []string{"deleted_at IS NULL"}
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		where = append(where, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		where = append(where, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	args = append(args, limit, max(filter.Offset, 0))
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY total_favorites DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		projectColumns, clause, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	projects, err := collectProjects(rows)
	return projects, total, err
}

func (r *pgProjectRepository) Update(ctx context.Context, project *Project) error {
	query := `
		UPDATE projects
		SET title = $2, slug = $3, description = $4, thumbnail_url = $5, url_links = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.pool.QueryRow(ctx, query,
		project.ID, project.Title, project.Slug, project.Description, project.ThumbnailURL, nonNil(project.URLLinks),
	).Scan(&project.UpdatedAt)
}

func (r *pgProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

// MergeCategoryData adds patch to the stored JSONB object in one statement,
// so concurrent patches never drop each other's keys. It returns the merged
// object, or nil when no live row matched.
func (r *pgProjectRepository) MergeCategoryData(ctx context.Context, id string, patch fields.Values) (fields.Values, error) {
	if patch == nil {
		patch = fields.Values{}
	}
	query := `
		UPDATE projects
		SET category_data = category_data || $2::jsonb, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING category_data
	`
	var merged fields.Values
	err := r.pool.QueryRow(ctx, query, id, patch).Scan(&merged)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (r *pgProjectRepository) UpdateFieldOrder(ctx context.Context, id string, order []string) error {
	query := `UPDATE projects SET field_order = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, nonNil(order))
	return err
}

// UpdateCategoryIfUnchanged switches category and order only while the row
// still has fromCategory and fromOrder. It reports whether a row changed.
func (r *pgProjectRepository) UpdateCategoryIfUnchanged(ctx context.Context, id, fromCategory string, fromOrder []string, toCategory string, newOrder []string) (bool, error) {
	query := `
		UPDATE projects
		SET category = $4, field_order = $5, updated_at = NOW()
		WHERE id = $1 AND category = $2 AND field_order = $3 AND deleted_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query, id, fromCategory, nonNil(fromOrder), toCategory, nonNil(newOrder))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *pgProjectRepository) AddTag(ctx context.Context, id, tag string) error {
	query := `
		UPDATE projects
		SET tags = array_append(tags, $2), updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(tags))
	`
	_, err := r.pool.Exec(ctx, query, id, tag)
	return err
}

func (r *pgProjectRepository) SetTags(ctx context.Context, id string, tags []string) error {
	query := `UPDATE projects SET tags = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, nonNil(tags))
	return err
}

func (r *pgProjectRepository) SoftDelete(ctx context.Context, id string) error {
	query := `UPDATE projects SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *pgProjectRepository) Restore(ctx context.Context, id string) error {
	query := `UPDATE projects SET deleted_at = NULL, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func collectProjects(rows pgx.Rows) ([]*Project, error) {
	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
