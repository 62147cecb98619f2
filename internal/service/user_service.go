package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/config"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/types"
)

// ============================================
// User Service
// ============================================

// Identity is what the identity provider tells us about the caller.
type Identity struct {
	UserID    string
	Email     string
	Username  string
	FullName  *string
	AvatarURL *string
}

type UserService interface {
	// Sync mirrors the identity into the users table and returns the profile.
	Sync(ctx context.Context, id *Identity) (*repository.User, error)
	GetByID(ctx context.Context, id string) (*repository.User, error)
	GetByUsername(ctx context.Context, username string) (*repository.User, error)
	IsAdmin(ctx context.Context, id string) (bool, error)
	SetRole(ctx context.Context, id, role string) (*repository.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{userRepo: userRepo, cfg: cfg}
}

func (s *userService) Sync(ctx context.Context, id *Identity) (*repository.User, error) {
	if id == nil || id.UserID == "" {
		return nil, ErrUnauthorized
	}
	username := id.Username
	if username == "" {
		username, _, _ = strings.Cut(id.Email, "@")
	}

	user := &repository.User{
		ID:        id.UserID,
		Email:     id.Email,
		Username:  username,
		FullName:  id.FullName,
		AvatarURL: id.AvatarURL,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}

	if s.cfg.IsAdmin(user.ID) && user.Role != types.RoleAdmin {
		if err := s.userRepo.UpdateRole(ctx, user.ID, types.RoleAdmin); err != nil {
			return nil, fmt.Errorf("failed to promote admin: %w", err)
		}
		user.Role = types.RoleAdmin
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*repository.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// IsAdmin checks the configured admin list first, then the stored role.
func (s *userService) IsAdmin(ctx context.Context, id string) (bool, error) {
	if s.cfg.IsAdmin(id) {
		return true, nil
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user != nil && user.Role == types.RoleAdmin, nil
}

func (s *userService) SetRole(ctx context.Context, id, role string) (*repository.User, error) {
	if !types.IsValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}
