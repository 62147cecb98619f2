package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TagSubmission struct {
	ID          string
	TagName     string
	ProjectID   string
	SubmitterID string
	Description *string
	Status      string
	AdminNotes  *string
	ReviewedBy  *string
	ReviewedAt  *time.Time
	CreatedAt   time.Time
}

type TagSubmissionRepository interface {
	Create(ctx context.Context, s *TagSubmission) error
	FindByID(ctx context.Context, id string) (*TagSubmission, error)
	FindPendingForProject(ctx context.Context, projectID, tagName string) (*TagSubmission, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*TagSubmission, error)
	ListBySubmitter(ctx context.Context, submitterID string) ([]*TagSubmission, error)
	// Review moves a pending submission to status. It reports false when the
	// submission was no longer pending.
	Review(ctx context.Context, id, status, reviewerID string, notes *string) (bool, error)
	// Approve marks a pending submission approved, creates its tag and adds
	// it to the submitting project in one transaction. It reports false when
	// the submission was no longer pending.
	Approve(ctx context.Context, id, reviewerID string, notes *string) (bool, error)
}

type pgTagSubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewTagSubmissionRepository(pool *pgxpool.Pool) TagSubmissionRepository {
	return &pgTagSubmissionRepository{pool: pool}
}

const submissionColumns = `id, tag_name, project_id, submitter_id, description, status, admin_notes, reviewed_by, reviewed_at, created_at`

func scanSubmission(row pgx.Row) (*TagSubmission, error) {
	s := &TagSubmission{}
	err := row.Scan(&s.ID, &s.TagName, &s.ProjectID, &s.SubmitterID, &s.Description,
		&s.Status, &s.AdminNotes, &s.ReviewedBy, &s.ReviewedAt, &s.CreatedAt)
	return s, err
}

func (r *pgTagSubmissionRepository) Create(ctx context.Context, s *TagSubmission) error {
	query := `
		INSERT INTO tag_submissions (tag_name, project_id, submitter_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at
	`
	return r.pool.QueryRow(ctx, query, s.TagName, s.ProjectID, s.SubmitterID, s.Description).
		Scan(&s.ID, &s.Status, &s.CreatedAt)
}

func (r *pgTagSubmissionRepository) FindByID(ctx context.Context, id string) (*TagSubmission, error) {
	s, err := scanSubmission(r.pool.QueryRow(ctx, `SELECT `+submissionColumns+` FROM tag_submissions WHERE id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgTagSubmissionRepository) FindPendingForProject(ctx context.Context, projectID, tagName string) (*TagSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM tag_submissions WHERE project_id = $1 AND tag_name = $2 AND status = 'pending'`
	s, err := scanSubmission(r.pool.QueryRow(ctx, query, projectID, tagName))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgTagSubmissionRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*TagSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM tag_submissions WHERE status = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func (r *pgTagSubmissionRepository) ListBySubmitter(ctx context.Context, submitterID string) ([]*TagSubmission, error) {
	query := `SELECT ` + submissionColumns + ` FROM tag_submissions WHERE submitter_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, submitterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubmissions(rows)
}

func (r *pgTagSubmissionRepository) Review(ctx context.Context, id, status, reviewerID string, notes *string) (bool, error) {
	query := `
		UPDATE tag_submissions
		SET status = $2, reviewed_by = $3, admin_notes = $4, reviewed_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := r.pool.Exec(ctx, query, id, status, reviewerID, notes)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *pgTagSubmissionRepository) Approve(ctx context.Context, id, reviewerID string, notes *string) (bool, error) {
	approved := false
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var tagName, projectID string
		var description *string
		err := tx.QueryRow(ctx, `
			UPDATE tag_submissions
			SET status = 'approved', reviewed_by = $2, admin_notes = $3, reviewed_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING tag_name, project_id, description
		`, id, reviewerID, notes).Scan(&tagName, &projectID, &description)
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO tags (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			tagName, description,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE projects
			SET tags = array_append(tags, $2), updated_at = NOW()
			WHERE id = $1 AND NOT ($2 = ANY(tags))
		`, projectID, tagName); err != nil {
			return err
		}
		approved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return approved, nil
}

func collectSubmissions(rows pgx.Rows) ([]*TagSubmission, error) {
	var out []*TagSubmission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
