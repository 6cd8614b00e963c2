package repository

import (
	"context"

	"holocron/internal/models"
	"holocron/internal/observability"

	"gorm.io/gorm"
)

// FavoriteRepository manages rows of the two favorites join tables.
// It does not check that the user or target exist; callers resolve them first.
type FavoriteRepository interface {
	HasCharacter(ctx context.Context, userID, characterID uint) (bool, error)
	AddCharacter(ctx context.Context, userID, characterID uint) error
	RemoveCharacter(ctx context.Context, userID, characterID uint) error
	HasPlanet(ctx context.Context, userID, planetID uint) (bool, error)
	AddPlanet(ctx context.Context, userID, planetID uint) error
	RemovePlanet(ctx context.Context, userID, planetID uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository returns a new FavoriteRepository implementation.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) HasCharacter(ctx context.Context, userID, characterID uint) (bool, error) {
	defer observability.TrackQuery("count", "favorite_characters")()

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FavoriteCharacter{}).
		Where("user_id = ? AND character_id = ?", userID, characterID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *favoriteRepository) AddCharacter(ctx context.Context, userID, characterID uint) error {
	defer observability.TrackQuery("create", "favorite_characters")()

	row := &models.FavoriteCharacter{UserID: userID, CharacterID: characterID}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("This character is already one of your favorites")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *favoriteRepository) RemoveCharacter(ctx context.Context, userID, characterID uint) error {
	defer observability.TrackQuery("delete", "favorite_characters")()

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND character_id = ?", userID, characterID).
		Delete(&models.FavoriteCharacter{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewConflictError("This character is not one of your favorites")
	}
	return nil
}

func (r *favoriteRepository) HasPlanet(ctx context.Context, userID, planetID uint) (bool, error) {
	defer observability.TrackQuery("count", "favorite_planets")()

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FavoritePlanet{}).
		Where("user_id = ? AND planet_id = ?", userID, planetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *favoriteRepository) AddPlanet(ctx context.Context, userID, planetID uint) error {
	defer observability.TrackQuery("create", "favorite_planets")()

	row := &models.FavoritePlanet{UserID: userID, PlanetID: planetID}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("This planet is already one of your favorites")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *favoriteRepository) RemovePlanet(ctx context.Context, userID, planetID uint) error {
	defer observability.TrackQuery("delete", "favorite_planets")()

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND planet_id = ?", userID, planetID).
		Delete(&models.FavoritePlanet{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewConflictError("This planet is not one of your favorites")
	}
	return nil
}
