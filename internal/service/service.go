package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/cache"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/config"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrStaleMigration = errors.New("project changed since the category change was requested")
)

// ProjectEvents receives realtime notifications about project changes.
// socket.Broadcaster implements it.
type ProjectEvents interface {
	FieldOrderChanged(projectID string, fieldOrder []string, completeness int, actorID string)
	CategoryChanged(projectID, category string, fieldOrder []string, completeness int, actorID string)
	CategoryDataChanged(projectID string, categoryData map[string]interface{}, completeness int, actorID string)
	ProjectUpdated(projectID string, project map[string]interface{}, actorID string)
	ProjectDeleted(projectID string)
	ProjectRestored(projectID string)
	TagSubmissionReviewed(submitterID, submissionID, tagName, status string)
}

type nopEvents struct{}

func (nopEvents) FieldOrderChanged(string, []string, int, string)                 {}
func (nopEvents) CategoryChanged(string, string, []string, int, string)           {}
func (nopEvents) CategoryDataChanged(string, map[string]interface{}, int, string) {}
func (nopEvents) ProjectUpdated(string, map[string]interface{}, string)           {}
func (nopEvents) ProjectDeleted(string)                                           {}
func (nopEvents) ProjectRestored(string)                                          {}
func (nopEvents) TagSubmissionReviewed(string, string, string, string)            {}

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth      AuthService
	User      UserService
	Project   ProjectService
	Tag       TagService
	Favorite  FavoriteService
	Analytics AnalyticsService

	// Pending category changes, exposed for the purge job
	Pending PendingMigrationStore
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config *config.Config
	Repos  *repository.Repositories
	// KV is the shared cache (Redis). Nil keeps pending changes in memory only.
	KV     KeyValueStore
	Events ProjectEvents
	Logger *zap.Logger
	Clock  cache.Clock
}

func NewServices(deps *ServiceDeps) *Services {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	events := deps.Events
	if events == nil {
		events = nopEvents{}
	}

	pending := NewPendingMigrationStore(deps.KV, deps.Config.PendingMigrationTTL, deps.Clock, log)

	return &Services{
		Auth: NewAuthService(deps.Config),
		User: NewUserService(deps.Repos.UserRepo, deps.Config),
		Project: NewProjectService(
			deps.Repos.ProjectRepo,
			pending,
			events,
			log,
		),
		Tag: NewTagService(
			deps.Repos.TagRepo,
			deps.Repos.TagSubmissionRepo,
			deps.Repos.ProjectRepo,
			cache.New[string, []*repository.Tag](deps.Config.TagCacheTTL, deps.Clock),
			events,
			log,
		),
		Favorite:  NewFavoriteService(deps.Repos.FavoriteRepo, deps.Repos.ProjectRepo),
		Analytics: NewAnalyticsService(deps.Repos.AnalyticsRepo, deps.Clock),
		Pending:   pending,
	}
}
