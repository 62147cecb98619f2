package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	// Core repositories (pgxpool)
	UserRepo          UserRepository
	ProjectRepo       ProjectRepository
	TagRepo           TagRepository
	TagSubmissionRepo TagSubmissionRepository
	FavoriteRepo      FavoriteRepository

	// Reporting (sqlx)
	AnalyticsRepo AnalyticsRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sqlx.DB) *Repositories {
	return &Repositories{
		UserRepo:          NewUserRepository(pool),
		ProjectRepo:       NewProjectRepository(pool),
		TagRepo:           NewTagRepository(pool),
		TagSubmissionRepo: NewTagSubmissionRepository(pool),
		FavoriteRepo:      NewFavoriteRepository(pool),

		AnalyticsRepo: NewAnalyticsRepository(db),
	}
}
