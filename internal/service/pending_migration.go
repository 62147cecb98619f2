package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/cache"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/db"
)

// KeyValueStore is the subset of db.RedisDB used for short-lived state.
type KeyValueStore interface {
	SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetCache(ctx context.Context, key string, dest interface{}) error
	TakeCache(ctx context.Context, key string, dest interface{}) error
	DeleteCache(ctx context.Context, key string) error
}

// PendingCategoryChange is a category change that hides data-bearing fields
// and waits for the owner to confirm it.
type PendingCategoryChange struct {
	Token         string    `json:"token"`
	ProjectID     string    `json:"projectId"`
	OwnerID       string    `json:"ownerId"`
	FromCategory  string    `json:"fromCategory"`
	FromOrder     []string  `json:"fromOrder"`
	ToCategory    string    `json:"toCategory"`
	NewFieldOrder []string  `json:"newFieldOrder"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

type PendingMigrationStore interface {
	Save(ctx context.Context, change *PendingCategoryChange) error
	// Get and Take return nil when the token is unknown or expired.
	Get(ctx context.Context, token string) (*PendingCategoryChange, error)
	Take(ctx context.Context, token string) (*PendingCategoryChange, error)
	Delete(ctx context.Context, token string) error
	// Purge drops expired in-memory entries.
	Purge() int
	TTL() time.Duration
	Now() time.Time
}

type pendingMigrationStore struct {
	kv    KeyValueStore
	local *cache.Cache[string, PendingCategoryChange]
	now   cache.Clock
	log   *zap.Logger
}

// NewPendingMigrationStore keeps pending changes in kv, falling back to an
// in-memory cache when kv is nil or failing.
func NewPendingMigrationStore(kv KeyValueStore, ttl time.Duration, clock cache.Clock, log *zap.Logger) PendingMigrationStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &pendingMigrationStore{
		kv:    kv,
		local: cache.New[string, PendingCategoryChange](ttl, clock),
		now:   clock,
		log:   log,
	}
}

func pendingKey(token string) string {
	return "pending_category:" + token
}

func (s *pendingMigrationStore) TTL() time.Duration { return s.local.TTL() }

func (s *pendingMigrationStore) Now() time.Time { return s.now() }

func (s *pendingMigrationStore) Save(ctx context.Context, change *PendingCategoryChange) error {
	if s.kv != nil {
		err := s.kv.SetCache(ctx, pendingKey(change.Token), change, s.TTL())
		if err == nil {
			return nil
		}
		s.log.Warn("redis unavailable, keeping pending category change in memory",
			zap.String("project_id", change.ProjectID), zap.Error(err))
	}
	s.local.Set(change.Token, *change)
	return nil
}

func (s *pendingMigrationStore) Get(ctx context.Context, token string) (*PendingCategoryChange, error) {
	return s.read(ctx, token, false)
}

// Take removes the change so a token can be confirmed only once.
func (s *pendingMigrationStore) Take(ctx context.Context, token string) (*PendingCategoryChange, error) {
	return s.read(ctx, token, true)
}

func (s *pendingMigrationStore) read(ctx context.Context, token string, take bool) (*PendingCategoryChange, error) {
	if token == "" {
		return nil, nil
	}
	if s.kv != nil {
		var (
			change PendingCategoryChange
			err    error
		)
		if take {
			err = s.kv.TakeCache(ctx, pendingKey(token), &change)
		} else {
			err = s.kv.GetCache(ctx, pendingKey(token), &change)
		}
		switch {
		case err == nil:
			return &change, nil
		case errors.Is(err, db.ErrCacheMiss):
		default:
			s.log.Warn("redis read failed, checking memory", zap.Error(err))
		}
	}

	var (
		change PendingCategoryChange
		ok     bool
	)
	if take {
		change, ok = s.local.Take(token)
	} else {
		change, ok = s.local.Get(token)
	}
	if !ok {
		return nil, nil
	}
	return &change, nil
}

func (s *pendingMigrationStore) Delete(ctx context.Context, token string) error {
	s.local.Delete(token)
	if s.kv != nil {
		return s.kv.DeleteCache(ctx, pendingKey(token))
	}
	return nil
}

func (s *pendingMigrationStore) Purge() int {
	return s.local.Purge()
}
