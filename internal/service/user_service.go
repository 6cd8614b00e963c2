// Package service holds the business logic between HTTP handlers and repositories.
package service

import (
	"context"

	"holocron/internal/models"
	"holocron/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns every user with favorites preloaded one level deep.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// GetUserFavorites returns the favorites of one user, or NOT_FOUND when the id does not resolve.
func (s *UserService) GetUserFavorites(ctx context.Context, id uint) (*models.User, models.Favorites, error) {
	user, err := s.userRepo.GetByIDWithFavorites(ctx, id)
	if err != nil {
		return nil, models.Favorites{}, err
	}
	return user, models.FavoritesOf(user), nil
}
