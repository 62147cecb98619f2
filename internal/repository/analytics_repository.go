package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/fields"
)

// ============================================
// ANALYTICS MODELS
// ============================================

type PlatformTotals struct {
	Projects           int `json:"projects" db:"projects"`
	DeletedProjects    int `json:"deletedProjects" db:"deleted_projects"`
	Users              int `json:"users" db:"users"`
	Tags               int `json:"tags" db:"tags"`
	PendingSubmissions int `json:"pendingSubmissions" db:"pending_submissions"`
	Favorites          int `json:"favorites" db:"favorites"`
}

type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int    `json:"count" db:"count"`
}

type TagCount struct {
	Tag   string `json:"tag" db:"tag"`
	Count int    `json:"count" db:"count"`
}

// ProjectCategoryState is the slice of a project needed to score it.
type ProjectCategoryState struct {
	ID           string         `db:"id"`
	Category     string         `db:"category"`
	FieldOrder   pq.StringArray `db:"field_order"`
	CategoryData fields.Values  `db:"-"`
}

type AnalyticsSnapshot struct {
	Day                 time.Time       `json:"day" db:"day"`
	TotalProjects       int             `json:"totalProjects" db:"total_projects"`
	TotalUsers          int             `json:"totalUsers" db:"total_users"`
	TotalTags           int             `json:"totalTags" db:"total_tags"`
	PendingSubmissions  int             `json:"pendingSubmissions" db:"pending_submissions"`
	TotalFavorites      int             `json:"totalFavorites" db:"total_favorites"`
	AverageCompleteness decimal.Decimal `json:"averageCompleteness" db:"average_completeness"`
	CreatedAt           time.Time       `json:"createdAt" db:"created_at"`
}

type AnalyticsRepository interface {
	Totals(ctx context.Context) (*PlatformTotals, error)
	CategoryCounts(ctx context.Context) ([]CategoryCount, error)
	TopTags(ctx context.Context, limit int) ([]TagCount, error)
	ListCategoryState(ctx context.Context) ([]ProjectCategoryState, error)
	SaveSnapshot(ctx context.Context, s *AnalyticsSnapshot) error
	ListSnapshots(ctx context.Context, since time.Time) ([]AnalyticsSnapshot, error)
}

type analyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Totals(ctx context.Context) (*PlatformTotals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM projects WHERE deleted_at IS NULL) AS projects,
			(SELECT COUNT(*) FROM projects WHERE deleted_at IS NOT NULL) AS deleted_projects,
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM tags) AS tags,
			(SELECT COUNT(*) FROM tag_submissions WHERE status = 'pending') AS pending_submissions,
			(SELECT COUNT(*) FROM favorites) AS favorites
	`
	var totals PlatformTotals
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *analyticsRepository) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	query := `
		SELECT category, COUNT(*) AS count
		FROM projects
		WHERE deleted_at IS NULL
		GROUP BY category
		ORDER BY count DESC, category
	`
	var counts []CategoryCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *analyticsRepository) TopTags(ctx context.Context, limit int) ([]TagCount, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT tag, COUNT(*) AS count
		FROM projects, unnest(tags) AS tag
		WHERE deleted_at IS NULL
		GROUP BY tag
		ORDER BY count DESC, tag
		LIMIT $1
	`
	var counts []TagCount
	if err := r.db.SelectContext(ctx, &counts, query, limit); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *analyticsRepository) ListCategoryState(ctx context.Context) ([]ProjectCategoryState, error) {
	query := `SELECT id, category, field_order, category_data FROM projects WHERE deleted_at IS NULL`
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProjectCategoryState
	for rows.Next() {
		var (
			s   ProjectCategoryState
			raw []byte
		)
		if err := rows.Scan(&s.ID, &s.Category, &s.FieldOrder, &raw); err != nil {
			return nil, err
		}
		s.CategoryData = fields.Values{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &s.CategoryData); err != nil {
				return nil, err
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *analyticsRepository) SaveSnapshot(ctx context.Context, s *AnalyticsSnapshot) error {
	query := `
		INSERT INTO analytics_snapshots
			(day, total_projects, total_users, total_tags, pending_submissions, total_favorites, average_completeness)
		VALUES
			(:day, :total_projects, :total_users, :total_tags, :pending_submissions, :total_favorites, :average_completeness)
		ON CONFLICT (day) DO UPDATE SET
			total_projects = EXCLUDED.total_projects,
			total_users = EXCLUDED.total_users,
			total_tags = EXCLUDED.total_tags,
			pending_submissions = EXCLUDED.pending_submissions,
			total_favorites = EXCLUDED.total_favorites,
			average_completeness = EXCLUDED.average_completeness
	`
	_, err := r.db.NamedExecContext(ctx, query, s)
	return err
}

func (r *analyticsRepository) ListSnapshots(ctx context.Context, since time.Time) ([]AnalyticsSnapshot, error) {
	query := `
		SELECT day, total_projects, total_users, total_tags, pending_submissions,
		       total_favorites, average_completeness, created_at
		FROM analytics_snapshots
		WHERE day >= $1
		ORDER BY day
	`
	var snaps []AnalyticsSnapshot
	if err := r.db.SelectContext(ctx, &snaps, query, since); err != nil {
		return nil, err
	}
	return snaps, nil
}
