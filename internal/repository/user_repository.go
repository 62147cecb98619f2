package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/types"
)

// User mirrors a profile owned by the identity provider. ID is the
// provider's subject.
type User struct {
	ID        string
	Email     string
	Username  string
	FullName  *string
	AvatarURL *string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserRepository interface {
	Upsert(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	UpdateRole(ctx context.Context, id, role string) error
}

type pgUserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgUserRepository{pool: pool}
}

// Upsert inserts the profile or refreshes its provider-owned columns. The
// role is only set on insert.
func (r *pgUserRepository) Upsert(ctx context.Context, user *User) error {
	if user.Role == "" {
		user.Role = types.RoleUser
	}
	query := `
		INSERT INTO users (id, email, username, full_name, avatar_url, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    username = CASE WHEN EXCLUDED.username <> '' THEN EXCLUDED.username ELSE users.username END,
		    full_name = COALESCE(EXCLUDED.full_name, users.full_name),
		    avatar_url = COALESCE(EXCLUDED.avatar_url, users.avatar_url),
		    updated_at = NOW()
		RETURNING role, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.Username, user.FullName, user.AvatarURL, user.Role,
	).Scan(&user.Role, &user.CreatedAt, &user.UpdatedAt)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, email, username, full_name, avatar_url, role, created_at, updated_at
		FROM users WHERE id = $1
	`
	return r.findOne(ctx, query, id)
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, email, username, full_name, avatar_url, role, created_at, updated_at
		FROM users WHERE LOWER(username) = LOWER($1)
	`
	return r.findOne(ctx, query, username)
}

func (r *pgUserRepository) findOne(ctx context.Context, query string, arg string) (*User, error) {
	u := &User{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.FullName, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *pgUserRepository) UpdateRole(ctx context.Context, id, role string) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, role)
	return err
}
