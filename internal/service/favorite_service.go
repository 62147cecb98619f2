package service

import (
	"context"
	"fmt"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/repository"
)

// ============================================
// Favorite Service
// ============================================

type FavoriteService interface {
	Add(ctx context.Context, userID, projectID string) error
	Remove(ctx context.Context, userID, projectID string) error
	IsFavorite(ctx context.Context, userID, projectID string) (bool, error)
	List(ctx context.Context, userID string) ([]*repository.Project, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	projectRepo  repository.ProjectRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, projectRepo repository.ProjectRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, projectRepo: projectRepo}
}

// Add is idempotent; favoriting twice leaves one favorite.
func (s *favoriteService) Add(ctx context.Context, userID, projectID string) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}
	if _, err := s.favoriteRepo.Add(ctx, userID, projectID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (s *favoriteService) Remove(ctx context.Context, userID, projectID string) error {
	if _, err := s.favoriteRepo.Remove(ctx, userID, projectID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, userID, projectID string) (bool, error) {
	return s.favoriteRepo.Exists(ctx, userID, projectID)
}

func (s *favoriteService) List(ctx context.Context, userID string) ([]*repository.Project, error) {
	return s.favoriteRepo.ListProjectsByUser(ctx, userID)
}
