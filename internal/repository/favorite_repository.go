package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FavoriteRepository interface {
	// Add and Remove report whether the favorite set changed.
	Add(ctx context.Context, userID, projectID string) (bool, error)
	Remove(ctx context.Context, userID, projectID string) (bool, error)
	Exists(ctx context.Context, userID, projectID string) (bool, error)
	ListProjectsByUser(ctx context.Context, userID string) ([]*Project, error)
}

type pgFavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &pgFavoriteRepository{pool: pool}
}

// Add inserts the favorite and bumps the project's counter in one
// transaction.
func (r *pgFavoriteRepository) Add(ctx context.Context, userID, projectID string) (bool, error) {
	return r.change(ctx,
		`INSERT INTO favorites (user_id, project_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		`UPDATE projects SET total_favorites = total_favorites + 1 WHERE id = $1`,
		userID, projectID)
}

func (r *pgFavoriteRepository) Remove(ctx context.Context, userID, projectID string) (bool, error) {
	return r.change(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND project_id = $2`,
		`UPDATE projects SET total_favorites = GREATEST(total_favorites - 1, 0) WHERE id = $1`,
		userID, projectID)
}

func (r *pgFavoriteRepository) change(ctx context.Context, favQuery, counterQuery, userID, projectID string) (bool, error) {
	changed := false
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, favQuery, userID, projectID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		changed = true
		_, err = tx.Exec(ctx, counterQuery, projectID)
		return err
	})
	return changed, err
}

func (r *pgFavoriteRepository) Exists(ctx context.Context, userID, projectID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND project_id = $2)`,
		userID, projectID,
	).Scan(&exists)
	return exists, err
}

func (r *pgFavoriteRepository) ListProjectsByUser(ctx context.Context, userID string) ([]*Project, error) {
	query := `
		SELECT p.id, p.owner_id, p.title, p.slug, p.description, p.category, p.category_data, p.field_order,
		       p.tags, p.thumbnail_url, p.url_links, p.total_favorites, p.deleted_at, p.created_at, p.updated_at
		FROM favorites f
		JOIN projects p ON p.id = f.project_id
		WHERE f.user_id = $1 AND p.deleted_at IS NULL
		ORDER BY f.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}
