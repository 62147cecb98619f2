package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Tag struct {
	ID           string
	Name         string
	Description  *string
	ProjectCount int
	CreatedAt    time.Time
}

type TagRepository interface {
	Create(ctx context.Context, tag *Tag) error
	FindByName(ctx context.Context, name string) (*Tag, error)
	List(ctx context.Context) ([]*Tag, error)
	Delete(ctx context.Context, id string) error
}

type pgTagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) TagRepository {
	return &pgTagRepository{pool: pool}
}

// Create inserts the tag; an existing tag with the same name is returned
// unchanged.
func (r *pgTagRepository) Create(ctx context.Context, tag *Tag) error {
	query := `
		INSERT INTO tags (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, description, created_at
	`
	return r.pool.QueryRow(ctx, query, tag.Name, tag.Description).
		Scan(&tag.ID, &tag.Description, &tag.CreatedAt)
}

func (r *pgTagRepository) FindByName(ctx context.Context, name string) (*Tag, error) {
	query := `SELECT id, name, description, created_at FROM tags WHERE name = $1`
	t := &Tag{}
	err := r.pool.QueryRow(ctx, query, name).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *pgTagRepository) List(ctx context.Context) ([]*Tag, error) {
	query := `
		SELECT t.id, t.name, t.description, t.created_at,
		       (SELECT COUNT(*) FROM projects p WHERE t.name = ANY(p.tags) AND p.deleted_at IS NULL)
		FROM tags t
		ORDER BY t.name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.ProjectCount); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *pgTagRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	return err
}
